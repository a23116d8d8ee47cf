package integrations

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/react-three/create/internal/project"
)

const (
	triplexExtension = "trytriplex.triplex-vsce"
	triplexDir       = ".triplex"
)

type triplexConfig struct {
	Schema   string `json:"$schema"`
	Provider string `json:"provider"`
}

// Triplex sets up the Triplex visual editor: a providers file mirroring the
// canvas wrappers of the other integrations, its config and an editor
// extension recommendation. It adds no dependency and no scene content.
func Triplex(g project.Generator, slot project.Slot[project.TriplexOptions]) error {
	if !slot.Active(false) {
		return nil
	}

	opts := g.Options()
	ext := opts.Language.SourceExt()
	postprocessing := Enabled(opts, NamePostprocessing)
	rapier := Enabled(opts, NameRapier)

	var imports []string
	params := []string{"children"}
	paramTypes := []string{"children: React.ReactNode"}
	if postprocessing {
		imports = append(imports, `import { Bloom, DepthOfField, EffectComposer } from "@react-three/postprocessing";`)
	}
	if rapier {
		imports = append(imports, `import { Physics } from "@react-three/rapier";`)
		params = append(params, "physicsEnabled = false", "debugPhysics = true")
		paramTypes = append(paramTypes, "physicsEnabled?: boolean", "debugPhysics?: boolean")
	}
	if postprocessing {
		params = append(params, "postProcessingEnabled = true")
		paramTypes = append(paramTypes, "postProcessingEnabled?: boolean")
	}

	providers, err := render("providers.tmpl", map[string]any{
		"Header":         strings.Join(imports, "\n"),
		"TypeScript":     !opts.Language.IsJavaScript(),
		"Postprocessing": postprocessing,
		"Rapier":         rapier,
		"Params":         params,
		"ParamTypes":     paramTypes,
	})
	if err != nil {
		return err
	}

	config, err := json.MarshalIndent(triplexConfig{
		Schema:   "https://triplex.dev/config.schema.json",
		Provider: "./providers" + ext,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode triplex config: %w", err)
	}

	g.AddFile(triplexDir+"/providers"+ext, project.TextFile(providers))
	g.AddFile(triplexDir+"/config.json", project.TextFile(string(config)))
	g.Inject(project.LocationEditorExtensionSuggestion, triplexExtension)
	g.Inject(project.LocationReadmeTools, "[Triplex](https://triplex.dev) - Build the 2D and 3D web without coding. Your visual workspace for React / Three Fiber.")
	return nil
}
