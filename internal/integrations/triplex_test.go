package integrations

import (
	"testing"

	"github.com/react-three/create/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriplex_EmptyProviders(t *testing.T) {
	// Test: without canvas integrations the providers only pass children through
	r := newRecorder(project.Options{})
	require.NoError(t, Triplex(r, project.Enabled[project.TriplexOptions]()))

	require.Equal(t, []string{".triplex/providers.tsx", ".triplex/config.json"}, r.fileOrder)
	providers, _ := r.files.Text(".triplex/providers.tsx")

	assert.True(t, len(providers) > 3 && providers[:3] == "/**", "providers should start with the doc comment")
	assert.Contains(t, providers, "export function GlobalProvider({ children }: { children: React.ReactNode }) {")
	assert.Contains(t, providers, "export function CanvasProvider({ children }: { children: React.ReactNode }) {")
	assert.Contains(t, providers, "    <>\n      {children}\n    </>")
	assert.NotContains(t, providers, "import")
	assert.Empty(t, r.dependencies)
}

func TestTriplex_PopulatedProviders(t *testing.T) {
	// Test: postprocessing and rapier show up as canvas wrappers
	r := newRecorder(project.Options{
		Postprocessing: project.Enabled[project.PostprocessingOptions](),
		Rapier:         project.Enabled[project.RapierOptions](),
	})
	require.NoError(t, Triplex(r, project.Configured(project.TriplexOptions{})))

	providers, _ := r.files.Text(".triplex/providers.tsx")
	assert.Contains(t, providers, "import { Bloom, DepthOfField, EffectComposer } from \"@react-three/postprocessing\";\nimport { Physics } from \"@react-three/rapier\";\n\n/**")
	assert.Contains(t, providers,
		"export function CanvasProvider({ children, physicsEnabled = false, debugPhysics = true, postProcessingEnabled = true }: "+
			"{ children: React.ReactNode; physicsEnabled?: boolean; debugPhysics?: boolean; postProcessingEnabled?: boolean }) {")
	assert.Contains(t, providers, "<EffectComposer enabled={postProcessingEnabled}>")
	assert.Contains(t, providers, "<Physics paused={!physicsEnabled} debug={debugPhysics}>")
}

func TestTriplex_SuppressedPostprocessingIsLeftOut(t *testing.T) {
	// Test: postprocessing disabled by xr does not reach the providers either
	r := newRecorder(project.Options{
		XR:             project.Enabled[project.XROptions](),
		Postprocessing: project.Enabled[project.PostprocessingOptions](),
	})
	require.NoError(t, Triplex(r, project.Enabled[project.TriplexOptions]()))

	providers, _ := r.files.Text(".triplex/providers.tsx")
	assert.NotContains(t, providers, "EffectComposer")
}

func TestTriplex_JavaScript(t *testing.T) {
	r := newRecorder(project.Options{Language: project.LanguageJavaScript})
	require.NoError(t, Triplex(r, project.Enabled[project.TriplexOptions]()))

	providers, ok := r.files.Text(".triplex/providers.jsx")
	require.True(t, ok)
	assert.NotContains(t, providers, "React.ReactNode")

	config, _ := r.files.Text(".triplex/config.json")
	assert.Contains(t, config, `"provider": "./providers.jsx"`)
}

func TestTriplex_InjectsSuggestionAndReadme(t *testing.T) {
	r := newRecorder(project.Options{})
	require.NoError(t, Triplex(r, project.Enabled[project.TriplexOptions]()))

	assert.Equal(t, []project.Injection{
		{Location: project.LocationEditorExtensionSuggestion, Code: "trytriplex.triplex-vsce"},
		{Location: project.LocationReadmeTools, Code: "[Triplex](https://triplex.dev) - Build the 2D and 3D web without coding. Your visual workspace for React / Three Fiber."},
	}, r.injections)
}

func TestTriplex_Config(t *testing.T) {
	r := newRecorder(project.Options{})
	require.NoError(t, Triplex(r, project.Enabled[project.TriplexOptions]()))

	config, ok := r.files.Text(".triplex/config.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"$schema": "https://triplex.dev/config.schema.json", "provider": "./providers.tsx"}`, config)
}
