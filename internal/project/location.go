package project

import (
	"encoding/json"
	"fmt"
)

// Location identifies an insertion point in the generated entry component or
// in one of the supporting documents. The zero value is LocationUnknown,
// which no fragment can be injected at.
type Location int

const (
	LocationUnknown Location = iota
	LocationViteConfigImport
	LocationImport
	LocationGlobalStart
	LocationGlobalEnd
	LocationDOMStart
	LocationDOM
	LocationDOMEnd
	LocationSceneStart
	LocationScene
	LocationSceneEnd
	LocationReadmeStart
	LocationReadmeEnd
	LocationReadmeLibraries
	LocationReadmeTools
	LocationReadmeCommands
	LocationEditorExtensionSuggestion

	// LocationCount bounds the declared locations.
	LocationCount
)

var locationNames = [LocationCount]string{
	LocationViteConfigImport:          "vite-config-import",
	LocationImport:                    "import",
	LocationGlobalStart:               "global-start",
	LocationGlobalEnd:                 "global-end",
	LocationDOMStart:                  "dom-start",
	LocationDOM:                       "dom",
	LocationDOMEnd:                    "dom-end",
	LocationSceneStart:                "scene-start",
	LocationScene:                     "scene",
	LocationSceneEnd:                  "scene-end",
	LocationReadmeStart:               "readme-start",
	LocationReadmeEnd:                 "readme-end",
	LocationReadmeLibraries:           "readme-libraries",
	LocationReadmeTools:               "readme-tools",
	LocationReadmeCommands:            "readme-commands",
	LocationEditorExtensionSuggestion: "editor-extension-suggestion",
}

// older option documents name the editor location after vscode
var locationAliases = map[string]Location{
	"vscode-extension-suggestion": LocationEditorExtensionSuggestion,
}

// Locations returns every known location in declaration order.
func Locations() []Location {
	out := make([]Location, 0, LocationCount-1)
	for l := LocationUnknown + 1; l < LocationCount; l++ {
		out = append(out, l)
	}
	return out
}

// ParseLocation resolves a location tag such as "scene-start".
func ParseLocation(name string) (Location, error) {
	for _, l := range Locations() {
		if locationNames[l] == name {
			return l, nil
		}
	}
	if l, ok := locationAliases[name]; ok {
		return l, nil
	}
	return LocationUnknown, fmt.Errorf("unknown injection location: %q", name)
}

func (l Location) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locationNames[l]
}

// Valid reports whether l is one of the declared locations.
func (l Location) Valid() bool {
	return l > LocationUnknown && l < LocationCount
}

func (l Location) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid injection location %d", int(l))
	}
	return json.Marshal(l.String())
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("injection location must be a string: %w", err)
	}
	parsed, err := ParseLocation(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
