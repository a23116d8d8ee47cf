// Package project holds the data model shared by the generation engine, the
// integrations and the collaborators consuming the generated file map.
package project

import (
	"encoding/json"
	"fmt"
)

// DefaultName is used when the caller leaves the project name empty.
const DefaultName = "react-three-app"

// DefaultPackageManager is used when the caller does not pick one.
const DefaultPackageManager = "npm"

// Language selects the source language of the generated project.
type Language string

const (
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
)

// ParseLanguage accepts the long and short names of a language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "", "typescript", "ts":
		return LanguageTypeScript, nil
	case "javascript", "js":
		return LanguageJavaScript, nil
	default:
		return "", fmt.Errorf("unsupported language: %s", s)
	}
}

// IsJavaScript reports whether plain JavaScript sources are requested.
// An empty language means TypeScript.
func (l Language) IsJavaScript() bool {
	return l == LanguageJavaScript
}

// SourceExt is the extension used for generated component sources.
func (l Language) SourceExt() string {
	if l.IsJavaScript() {
		return ".jsx"
	}
	return ".tsx"
}

// Integration option types. Most integrations have no options yet; they still
// get their own type so a slot can grow options without changing the wire format.
type (
	DreiOptions        struct{}
	HandleOptions      struct{}
	LevaOptions        struct{}
	RapierOptions      struct{}
	UikitOptions       struct{}
	TriplexOptions     struct{}
	GithubPagesOptions struct{}

	OffscreenOptions      struct{}
	PostprocessingOptions struct{}

	KootaOptions struct {
		AddExample *bool `json:"addExample,omitempty"`
	}

	ZustandOptions struct {
		AddExample *bool `json:"addExample,omitempty"`
	}

	// FiberOptions controls the example scene.
	FiberOptions struct {
		// AddExample defaults to true.
		AddExample *bool `json:"addExample,omitempty"`
	}

	// XROptions is forwarded to createXRStore in the generated source.
	XROptions struct {
		StoreOptions map[string]any `json:"storeOptions,omitempty"`
	}
)

// Injection is a raw code fragment supplied by the caller.
type Injection struct {
	Location Location `json:"location"`
	Code     string   `json:"code"`
}

// Replacement is a literal substitution applied to the entry component.
type Replacement struct {
	Search  string `json:"search" validate:"required"`
	Replace string `json:"replace"`
}

// Options is the generation request.
type Options struct {
	Name     string   `json:"name,omitempty" validate:"omitempty,max=100,project_name"`
	Language Language `json:"language,omitempty" validate:"omitempty,oneof=typescript javascript"`

	GithubUserName string `json:"githubUserName,omitempty"`
	GithubRepoName string `json:"githubRepoName,omitempty"`

	Drei           Slot[DreiOptions]           `json:"drei,omitzero"`
	Handle         Slot[HandleOptions]         `json:"handle,omitzero"`
	Koota          Slot[KootaOptions]          `json:"koota,omitzero"`
	Leva           Slot[LevaOptions]           `json:"leva,omitzero"`
	Offscreen      Slot[OffscreenOptions]      `json:"offscreen,omitzero"`
	Postprocessing Slot[PostprocessingOptions] `json:"postprocessing,omitzero"`
	Rapier         Slot[RapierOptions]         `json:"rapier,omitzero"`
	Triplex        Slot[TriplexOptions]        `json:"triplex,omitzero"`
	Uikit          Slot[UikitOptions]          `json:"uikit,omitzero"`
	XR             Slot[XROptions]             `json:"xr,omitzero"`
	Zustand        Slot[ZustandOptions]        `json:"zustand,omitzero"`
	Fiber          Slot[FiberOptions]          `json:"fiber,omitzero"`
	GithubPages    Slot[GithubPagesOptions]    `json:"githubPages,omitzero"`

	Dependencies map[string]string `json:"dependencies,omitempty" validate:"omitempty,dive,keys,required,endkeys,semver_range"`
	Files        FileMap           `json:"files,omitempty" validate:"omitempty,dive"`
	Injections   []Injection       `json:"injections,omitempty"`
	Replacements []Replacement     `json:"replacements,omitempty" validate:"omitempty,dive"`

	PackageManager string `json:"packageManager,omitempty" validate:"omitempty,max=64,excludesall=;&"`
	SkipSetup      bool   `json:"skipSetup,omitempty"`
}

// ProjectName returns the name with the default applied.
func (o *Options) ProjectName() string {
	if o.Name == "" {
		return DefaultName
	}
	return o.Name
}

// PackageManagerOrDefault returns the package manager with the default applied.
func (o *Options) PackageManagerOrDefault() string {
	if o.PackageManager == "" {
		return DefaultPackageManager
	}
	return o.PackageManager
}

// ParseOptions decodes a serialized options document.
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	return &opts, nil
}
