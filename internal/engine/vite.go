package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/react-three/create/internal/codegen/writer"
	"github.com/react-three/create/internal/project"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// renderViteConfig renders the bundler configuration module. Keys are sorted
// and Expr values are written as code.
func renderViteConfig(imports []string, config project.ViteConfig) (string, error) {
	body, err := formatValue(config, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render vite config: %w", err)
	}

	w := writer.NewWriter("  ")
	w.WriteLine(viteImport)
	w.WriteLines(imports...)
	w.BlankLine()
	w.WriteLinef("export default defineConfig(%s)", body)
	return w.String() + "\n", nil
}

// formatValue writes v as a JavaScript literal. Nested objects are indented
// one level deeper than their parent.
func formatValue(v any, indent string) (string, error) {
	switch val := v.(type) {
	case project.Expr:
		return string(val), nil
	case nil:
		return "null", nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		return formatObject(rv, indent)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return jsonLiteral(v)
		}
		return formatList(rv, indent)
	default:
		return jsonLiteral(v)
	}
}

func formatObject(rv reflect.Value, indent string) (string, error) {
	if rv.Len() == 0 {
		return "{}", nil
	}
	keys := make([]string, 0, rv.Len())
	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, k := range keys {
		formatted, err := formatValue(values[k], indent+"  ")
		if err != nil {
			return "", fmt.Errorf("%s: %w", k, err)
		}
		sb.WriteString(indent)
		sb.WriteString(objectKey(k))
		sb.WriteString(": ")
		sb.WriteString(formatted)
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.TrimSuffix(indent, "  "))
	sb.WriteString("}")
	return sb.String(), nil
}

// formatList keeps lists of scalars on one line.
func formatList(rv reflect.Value, indent string) (string, error) {
	if rv.Len() == 0 {
		return "[]", nil
	}
	items := make([]string, rv.Len())
	inline := true
	for i := range items {
		elem := rv.Index(i).Interface()
		formatted, err := formatValue(elem, indent+"  ")
		if err != nil {
			return "", fmt.Errorf("[%d]: %w", i, err)
		}
		if strings.Contains(formatted, "\n") {
			inline = false
		}
		items[i] = formatted
	}
	if inline {
		return "[" + strings.Join(items, ", ") + "]", nil
	}

	var sb strings.Builder
	sb.WriteString("[\n")
	for _, item := range items {
		sb.WriteString(indent)
		sb.WriteString(item)
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.TrimSuffix(indent, "  "))
	sb.WriteString("]")
	return sb.String(), nil
}

func objectKey(k string) string {
	if identifier.MatchString(k) {
		return k
	}
	quoted, _ := jsonLiteral(k)
	return quoted
}

func jsonLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
