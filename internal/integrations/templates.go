package integrations

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generated sources use {{ }} themselves (JSX props, workflow expressions),
// so the templates use [[ ]].
var templates = template.Must(
	template.New("integrations").
		Delims("[[", "]]").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templatesFS, "templates/*.tmpl"),
)

func render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
