package engine

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/react-three/create/internal/codegen/writer"
	"github.com/react-three/create/internal/project"
)

//go:embed templates/index.html.tmpl
var templatesFS embed.FS

var indexHTML = template.Must(
	template.New("index.html.tmpl").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templatesFS, "templates/index.html.tmpl"),
)

type packageScripts struct {
	Dev   string `json:"dev"`
	Build string `json:"build"`
}

type packageManifest struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Dependencies map[string]string `json:"dependencies"`
	Scripts      packageScripts    `json:"scripts"`
}

type editorRecommendations struct {
	Recommendations []string `json:"recommendations"`
}

// encodeJSON writes v indented by two spaces, without escaping markup
// characters, and with a trailing newline.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPackageManifest(name string, dependencies map[string]string) (string, error) {
	content, err := encodeJSON(packageManifest{
		Name:         name,
		Type:         "module",
		Dependencies: dependencies,
		Scripts:      packageScripts{Dev: "vite", Build: "vite build"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to render package.json: %w", err)
	}
	return content, nil
}

type readme struct {
	name           string
	packageManager string
	appFile        string
	start          []string
	libraries      []string
	tools          []string
	commands       []string
	end            []string
}

func (r readme) render() string {
	w := writer.NewWriter("  ")
	w.WriteLine("# " + r.name)
	w.WriteLine(readmeGeneratedBy)
	for _, notice := range r.start {
		w.BlankLine()
		w.WriteLine(notice)
	}

	w.WriteSection("## Project Architecture", func() {
		w.WriteLine("This project uses [Vite](https://vitejs.dev/) as the bundler for fast development and optimized production builds.")
		w.WriteBullets(
			fmt.Sprintf("`%s` defines the main application component containing your 3D content", r.appFile),
			"Modify the content inside the `<Canvas>` component to change what is visible on screen",
			"Static assets can be placed in the `public` folder",
		)
	})

	w.WriteSection("## Libraries", func() {
		libraries := append(slices.Clone(readmeBaselineLibraries), r.libraries...)
		w.WriteLine("The following libraries are used - checkout the linked docs to learn more")
		w.WriteBullets(libraries...)
	})

	w.WriteSection("## Tools", func() {
		w.WriteBullets(r.tools...)
	})

	w.WriteSection("## Development Commands", func() {
		pm := r.packageManager
		w.WriteBullets(
			fmt.Sprintf("`%s install` to install the dependencies", pm),
			fmt.Sprintf("`%s run dev` to run the development server and preview the app with live updates", pm),
			fmt.Sprintf("`%s run build` to build the app into the `dist` folder", pm),
		)
		w.WriteBullets(r.commands...)
	})

	if len(r.end) > 0 {
		w.BlankLine()
		w.WriteLines(r.end...)
	}
	return w.String() + "\n"
}

// renderApp renders the entry component. The *-end lists are written in
// reverse so that wrappers close in the opposite order they were opened.
func renderApp(g *generation) string {
	w := writer.NewWriter("  ")
	w.WriteLines(g.fragments(project.LocationImport)...)
	w.BlankLine()
	if start := g.fragments(project.LocationGlobalStart); len(start) > 0 {
		w.WriteLines(start...)
		w.BlankLine()
	}

	w.WriteBlock("export function App() {", "}", func() {
		w.WriteBlock("return (", ")", func() {
			w.WriteBlock("<>", "</>", func() {
				w.WriteLines(g.fragments(project.LocationDOMStart)...)
				w.WriteLines(g.fragments(project.LocationDOM)...)
				w.WriteBlock("<Canvas>", "</Canvas>", func() {
					w.WriteLines(g.fragments(project.LocationSceneStart)...)
					w.WriteLines(g.fragments(project.LocationScene)...)
					w.WriteLines(reversed(g.fragments(project.LocationSceneEnd))...)
				})
				w.WriteLines(reversed(g.fragments(project.LocationDOMEnd))...)
			})
		})
	})

	if end := g.fragments(project.LocationGlobalEnd); len(end) > 0 {
		w.BlankLine()
		w.WriteLines(reversed(end)...)
	}
	return w.String() + "\n"
}

// applyReplacements substitutes the first occurrence of each search string,
// in registration order.
func applyReplacements(code string, replacements []project.Replacement) string {
	for _, r := range replacements {
		code = strings.Replace(code, r.Search, r.Replace, 1)
	}
	return code
}

func renderIndexHTML(title, entryPath string) (string, error) {
	var buf bytes.Buffer
	err := indexHTML.Execute(&buf, map[string]string{
		"Title":     title,
		"EntryPath": entryPath,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render index.html: %w", err)
	}
	return buf.String(), nil
}

func renderEditorRecommendations(extensions []string) (string, error) {
	content, err := encodeJSON(editorRecommendations{Recommendations: extensions})
	if err != nil {
		return "", fmt.Errorf("failed to render editor recommendations: %w", err)
	}
	return content, nil
}

func reversed(s []string) []string {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}
