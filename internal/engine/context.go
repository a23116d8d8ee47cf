package engine

import (
	"fmt"

	"github.com/react-three/create/internal/merge"
	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
)

// generation is the mutable state of one Generate call. It is the Generator
// handed to every integration.
type generation struct {
	logger zerolog.Logger
	merger *merge.Merger

	opts         *project.Options
	dependencies map[string]string
	files        project.FileMap
	snippets     [project.LocationCount][]string
	replacements []project.Replacement
	vite         project.ViteConfig
}

var _ project.Generator = (*generation)(nil)

func newGeneration(logger zerolog.Logger, opts *project.Options) *generation {
	return &generation{
		logger:       logger,
		merger:       merge.New(logger),
		opts:         opts,
		dependencies: make(map[string]string),
		files:        make(project.FileMap),
	}
}

func (g *generation) Options() *project.Options {
	return g.opts
}

func (g *generation) AddDependency(name, versionRange string) {
	if existing, ok := g.dependencies[name]; ok && existing != versionRange {
		g.logger.Warn().
			Str("dependency", name).
			Str("previous", existing).
			Str("range", versionRange).
			Msg("dependency range overridden")
	}
	g.dependencies[name] = versionRange
}

func (g *generation) AddFile(path string, file project.File) {
	g.files[path] = file
}

func (g *generation) Inject(location project.Location, code string) {
	if !location.Valid() {
		g.logger.Error().Int("location", int(location)).Msg("dropping injection at unknown location")
		return
	}
	g.snippets[location] = append(g.snippets[location], code)
}

func (g *generation) Replace(search, replace string) {
	g.replacements = append(g.replacements, project.Replacement{Search: search, Replace: replace})
}

func (g *generation) ConfigureVite(partial project.ViteConfig) error {
	merged, err := g.merger.Merge(g.vite, partial)
	if err != nil {
		return fmt.Errorf("failed to configure vite: %w", err)
	}
	config, ok := merged.(map[string]any)
	if !ok {
		return fmt.Errorf("failed to configure vite: merged config is %T", merged)
	}
	g.vite = config
	return nil
}

// fragments returns the fragments injected at location.
func (g *generation) fragments(location project.Location) []string {
	return g.snippets[location]
}
