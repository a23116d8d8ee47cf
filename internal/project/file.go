package project

import (
	"fmt"
	"sort"
)

// FileKind distinguishes literal file content from content fetched at write time.
type FileKind string

const (
	FileKindText   FileKind = "text"
	FileKindRemote FileKind = "remote"
)

// File describes a single generated file. Text files carry Content, remote
// files carry a URL that the consumer fetches when writing.
type File struct {
	Kind    FileKind `json:"type" validate:"required,oneof=text remote"`
	Content string   `json:"content,omitempty"`
	URL     string   `json:"url,omitempty" validate:"omitempty,url"`
}

// TextFile returns a text file descriptor.
func TextFile(content string) File {
	return File{Kind: FileKindText, Content: content}
}

// RemoteFile returns a remote file descriptor.
func RemoteFile(url string) File {
	return File{Kind: FileKindRemote, URL: url}
}

// IsRemote reports whether the file content must be fetched.
func (f File) IsRemote() bool {
	return f.Kind == FileKindRemote
}

func (f File) String() string {
	if f.IsRemote() {
		return fmt.Sprintf("remote(%s)", f.URL)
	}
	return fmt.Sprintf("text(%d bytes)", len(f.Content))
}

// FileMap maps a relative path to the file written there.
type FileMap map[string]File

// Paths returns the paths of m in lexical order.
func (m FileMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Text returns the content of a text file at path.
func (m FileMap) Text(path string) (string, bool) {
	f, ok := m[path]
	if !ok || f.IsRemote() {
		return "", false
	}
	return f.Content, true
}
