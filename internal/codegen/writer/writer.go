// Package writer assembles generated sources line by line.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates lines of generated source. Fragments handed to it may
// span several lines; each line of a fragment gets the current indentation.
type Writer struct {
	lines        []string
	indentLevel  int
	indentString string
}

// NewWriter creates a writer indenting with indentString.
func NewWriter(indentString string) *Writer {
	return &Writer{indentString: indentString}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteLine writes s as one or more lines.
func (w *Writer) WriteLine(s string) {
	prefix := strings.Repeat(w.indentString, w.indentLevel)
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			w.lines = append(w.lines, "")
			continue
		}
		w.lines = append(w.lines, prefix+line)
	}
}

// WriteLinef writes a formatted line.
func (w *Writer) WriteLinef(format string, args ...any) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

// WriteLines writes every fragment in order.
func (w *Writer) WriteLines(fragments ...string) {
	for _, f := range fragments {
		w.WriteLine(f)
	}
}

// WriteBullets writes each item as a markdown list entry.
func (w *Writer) WriteBullets(items ...string) {
	for _, item := range items {
		w.WriteLine("- " + item)
	}
}

// BlankLine adds an empty line unless the last line is already empty.
func (w *Writer) BlankLine() {
	if len(w.lines) > 0 && w.lines[len(w.lines)-1] != "" {
		w.lines = append(w.lines, "")
	}
}

// WriteBlock writes content between opener and closer, indented one level.
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteSection writes a markdown heading followed by body. Nothing is
// written when body is empty.
func (w *Writer) WriteSection(heading string, body func()) {
	mark := len(w.lines)
	w.BlankLine()
	w.WriteLine(heading)
	headerEnd := len(w.lines)
	body()
	if len(w.lines) == headerEnd {
		w.lines = w.lines[:mark]
	}
}

// String returns the generated source, lines separated by newlines.
func (w *Writer) String() string {
	return strings.Join(w.lines, "\n")
}
