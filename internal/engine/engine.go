// Package engine assembles a project's files from generation options and the
// integration catalog.
//
// Generation is synchronous and performs no I/O. All state lives in the call,
// so concurrent calls need no coordination.
package engine

import (
	"fmt"
	"maps"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/react-three/create/internal/integrations"
	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine generates projects, reporting diagnostics to its logger.
type Engine struct {
	logger zerolog.Logger
}

// New creates an Engine logging to logger.
func New(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Generate runs a generation with the global logger.
func Generate(opts project.Options) (project.FileMap, error) {
	return New(log.Logger).Generate(opts)
}

// Generate turns opts into the files of a project. opts is not modified.
func (e *Engine) Generate(opts project.Options) (project.FileMap, error) {
	cloned, ok := deepcopy.Copy(opts).(project.Options)
	if !ok {
		return nil, fmt.Errorf("failed to copy options")
	}
	for i, inj := range cloned.Injections {
		if !inj.Location.Valid() {
			return nil, fmt.Errorf("injection %d has unknown location %d", i, inj.Location)
		}
	}

	name := cloned.ProjectName()
	logger := e.logger.With().Str("project", name).Logger()
	g := newGeneration(logger, &cloned)

	maps.Copy(g.files, cloned.Files)
	maps.Copy(g.dependencies, baselineDependencies)
	maps.Copy(g.dependencies, cloned.Dependencies)
	g.replacements = append(g.replacements, cloned.Replacements...)

	typescript := !cloned.Language.IsJavaScript()
	ext := cloned.Language.SourceExt()
	if typescript {
		content, err := encodeJSON(defaultTSConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to render tsconfig.json: %w", err)
		}
		g.files["tsconfig.json"] = project.TextFile(content)
		maps.Copy(g.dependencies, typeDependencies)
	}

	g.Inject(project.LocationImport, canvasImport)
	g.Inject(project.LocationViteConfigImport, viteReactImport)
	g.vite = project.ViteConfig{
		"plugins": []any{project.Expr("react()")},
		"resolve": map[string]any{"dedupe": []any{"three"}},
		"base":    "/" + name,
	}

	suppressed := integrations.Suppressed(&cloned)
	for _, in := range integrations.Catalog() {
		if !in.Active(&cloned) {
			continue
		}
		if reason, ok := suppressed[in.Name]; ok {
			logger.Info().Str("integration", in.Name).Msg(reason)
			continue
		}
		logger.Debug().Str("integration", in.Name).Msg("running integration")
		if err := in.Run(g); err != nil {
			return nil, fmt.Errorf("failed to run integration %s: %w", in.Name, err)
		}
	}

	for _, inj := range cloned.Injections {
		g.Inject(inj.Location, inj.Code)
	}

	viteConfig, err := renderViteConfig(g.fragments(project.LocationViteConfigImport), g.vite)
	if err != nil {
		return nil, err
	}
	g.files["vite.config.js"] = project.TextFile(viteConfig)

	manifest, err := renderPackageManifest(name, g.dependencies)
	if err != nil {
		return nil, err
	}
	g.files["package.json"] = project.TextFile(manifest)

	g.files[".gitignore"] = project.TextFile(strings.Join(gitIgnore, "\n") + "\n")
	g.files[".gitattributes"] = project.TextFile(strings.Join(gitAttributes, "\n") + "\n")
	entry := "src/index" + ext
	if typescript {
		g.files[entry] = project.TextFile(indexTS)
	} else {
		g.files[entry] = project.TextFile(indexJS)
	}

	g.files["README.md"] = project.TextFile(readme{
		name:           name,
		packageManager: cloned.PackageManagerOrDefault(),
		appFile:        "app" + ext,
		start:          g.fragments(project.LocationReadmeStart),
		libraries:      g.fragments(project.LocationReadmeLibraries),
		tools:          g.fragments(project.LocationReadmeTools),
		commands:       g.fragments(project.LocationReadmeCommands),
		end:            g.fragments(project.LocationReadmeEnd),
	}.render())

	app := applyReplacements(renderApp(g), g.replacements)
	g.files["src/app"+ext] = project.TextFile(app)

	html, err := renderIndexHTML(name, "./"+entry)
	if err != nil {
		return nil, err
	}
	g.files["index.html"] = project.TextFile(html)

	if extensions := g.fragments(project.LocationEditorExtensionSuggestion); len(extensions) > 0 {
		content, err := renderEditorRecommendations(extensions)
		if err != nil {
			return nil, err
		}
		g.files[".vscode/extensions.json"] = project.TextFile(content)
	}

	logger.Debug().Int("files", len(g.files)).Int("dependencies", len(g.dependencies)).Msg("project generated")
	return g.files, nil
}
