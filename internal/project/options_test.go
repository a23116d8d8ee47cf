package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  SlotState
	}{
		{name: "true marker", input: `{"xr": true}`, want: SlotEnabled},
		{name: "false marker", input: `{"xr": false}`, want: SlotDisabled},
		{name: "empty object", input: `{"xr": {}}`, want: SlotConfigured},
		{name: "null", input: `{"xr": null}`, want: SlotAbsent},
		{name: "missing", input: `{}`, want: SlotAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.XR.State)
		})
	}
}

func TestSlot_ConfiguredOptions(t *testing.T) {
	// Test: object slots carry their options
	opts, err := ParseOptions([]byte(`{"xr": {"storeOptions": {"foveation": 1}}, "fiber": {"addExample": false}}`))
	require.NoError(t, err)

	assert.Equal(t, SlotConfigured, opts.XR.State)
	assert.Equal(t, map[string]any{"foveation": float64(1)}, opts.XR.Options.StoreOptions)
	require.NotNil(t, opts.Fiber.Options.AddExample)
	assert.False(t, *opts.Fiber.Options.AddExample)
}

func TestSlot_InvalidValue(t *testing.T) {
	// Test: slots reject values that are neither booleans nor objects
	_, err := ParseOptions([]byte(`{"drei": "yes"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boolean or an object")
}

func TestSlot_Active(t *testing.T) {
	tests := []struct {
		name      string
		slot      Slot[DreiOptions]
		defaultOn bool
		want      bool
	}{
		{name: "absent", slot: Slot[DreiOptions]{}, want: false},
		{name: "absent default on", slot: Slot[DreiOptions]{}, defaultOn: true, want: true},
		{name: "disabled default on", slot: Disabled[DreiOptions](), defaultOn: true, want: false},
		{name: "enabled", slot: Enabled[DreiOptions](), want: true},
		{name: "configured", slot: Configured(DreiOptions{}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Active(tt.defaultOn))
		})
	}
}

func TestOptions_MarshalOmitsAbsentSlots(t *testing.T) {
	// Test: absent slots disappear, explicit states survive a round trip
	opts := Options{
		Name:  "demo",
		Drei:  Enabled[DreiOptions](),
		Fiber: Disabled[FiberOptions](),
		XR:    Configured(XROptions{StoreOptions: map[string]any{"hand": "left"}}),
	}

	data, err := json.Marshal(opts)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, true, raw["drei"])
	assert.Equal(t, false, raw["fiber"])
	assert.NotContains(t, raw, "leva")
	assert.NotContains(t, raw, "postprocessing")

	back, err := ParseOptions(data)
	require.NoError(t, err)
	assert.Equal(t, SlotEnabled, back.Drei.State)
	assert.Equal(t, SlotDisabled, back.Fiber.State)
	assert.Equal(t, "left", back.XR.Options.StoreOptions["hand"])
}

func TestOptions_Defaults(t *testing.T) {
	opts := &Options{}
	assert.Equal(t, DefaultName, opts.ProjectName())
	assert.Equal(t, "npm", opts.PackageManagerOrDefault())
	assert.False(t, opts.Language.IsJavaScript())
	assert.Equal(t, ".tsx", opts.Language.SourceExt())

	opts.Language = LanguageJavaScript
	assert.Equal(t, ".jsx", opts.Language.SourceExt())
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("js")
	require.NoError(t, err)
	assert.Equal(t, LanguageJavaScript, lang)

	lang, err = ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, LanguageTypeScript, lang)

	_, err = ParseLanguage("coffeescript")
	assert.Error(t, err)
}

func TestFileMap_Paths(t *testing.T) {
	m := FileMap{
		"src/app.tsx":  TextFile("app"),
		"README.md":    TextFile("readme"),
		"public/a.glb": RemoteFile("https://example.com/a.glb"),
	}
	assert.Equal(t, []string{"README.md", "public/a.glb", "src/app.tsx"}, m.Paths())

	content, ok := m.Text("README.md")
	assert.True(t, ok)
	assert.Equal(t, "readme", content)

	_, ok = m.Text("public/a.glb")
	assert.False(t, ok)
}

func TestFile_JSON(t *testing.T) {
	var f File
	require.NoError(t, json.Unmarshal([]byte(`{"type":"remote","url":"https://example.com/model.glb"}`), &f))
	assert.True(t, f.IsRemote())
	assert.Equal(t, "https://example.com/model.glb", f.URL)
}
