package project

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema describes a slot as either a boolean or an options object.
func (Slot[T]) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "boolean"},
			{Type: "object"},
		},
	}
}

// JSONSchema lists the location tags.
func (Location) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, LocationCount)
	for _, l := range Locations() {
		enum = append(enum, l.String())
	}
	return &jsonschema.Schema{
		Type: "string",
		Enum: enum,
	}
}

// JSONSchema lists the supported languages.
func (Language) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: []any{string(LanguageTypeScript), string(LanguageJavaScript)},
	}
}

// Schema reflects the JSON Schema of an options document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Options{})
	s.Title = "create-react-three options"
	s.Description = "Options accepted by create-react-three to generate a project"
	return s
}
