// Package integrations contains the optional contributors to a generated
// project and the fixed order in which they run.
//
// Every integration is a function of the generation context and its own
// slot. It contributes only through the context and may read, never write,
// the options of the other integrations.
package integrations

import (
	"fmt"

	"github.com/react-three/create/internal/project"
)

// Integration names, as used in options documents and CLI flags.
const (
	NameDrei           = "drei"
	NameHandle         = "handle"
	NameKoota          = "koota"
	NameLeva           = "leva"
	NameOffscreen      = "offscreen"
	NamePostprocessing = "postprocessing"
	NameRapier         = "rapier"
	NameUikit          = "uikit"
	NameXR             = "xr"
	NameZustand        = "zustand"
	NameFiber          = "fiber"
	NameGithubPages    = "github-pages"
	NameTriplex        = "triplex"
)

// Integration is one catalog entry.
type Integration struct {
	Name string
	// Description is shown in prompts and help output.
	Description string
	// Active reports whether opts turns the integration on, ignoring the
	// suppression policy.
	Active func(opts *project.Options) bool
	// Run invokes the integration with its slot taken from g.Options().
	Run func(g project.Generator) error
}

// Set up in init: Triplex consults the catalog, so a plain initializer
// would form an initialization cycle.
var catalog []Integration

func init() {
	catalog = []Integration{
		{
			Name:        NameDrei,
			Description: "add @react-three/drei",
			Active:      func(o *project.Options) bool { return o.Drei.Active(false) },
			Run:         func(g project.Generator) error { return Drei(g, g.Options().Drei) },
		},
		{
			Name:        NameHandle,
			Description: "add @react-three/handle",
			Active:      func(o *project.Options) bool { return o.Handle.Active(false) },
			Run:         func(g project.Generator) error { return Handle(g, g.Options().Handle) },
		},
		{
			Name:        NameKoota,
			Description: "add koota",
			Active:      func(o *project.Options) bool { return o.Koota.Active(false) },
			Run:         func(g project.Generator) error { return Koota(g, g.Options().Koota) },
		},
		{
			Name:        NameLeva,
			Description: "add leva",
			Active:      func(o *project.Options) bool { return o.Leva.Active(false) },
			Run:         func(g project.Generator) error { return Leva(g, g.Options().Leva) },
		},
		{
			Name:        NameOffscreen,
			Description: "add @react-three/offscreen",
			Active:      func(o *project.Options) bool { return o.Offscreen.Active(false) },
			Run:         func(g project.Generator) error { return Offscreen(g, g.Options().Offscreen) },
		},
		{
			Name:        NamePostprocessing,
			Description: "add @react-three/postprocessing",
			Active:      func(o *project.Options) bool { return o.Postprocessing.Active(false) },
			Run:         func(g project.Generator) error { return Postprocessing(g, g.Options().Postprocessing) },
		},
		{
			Name:        NameRapier,
			Description: "add @react-three/rapier",
			Active:      func(o *project.Options) bool { return o.Rapier.Active(false) },
			Run:         func(g project.Generator) error { return Rapier(g, g.Options().Rapier) },
		},
		{
			Name:        NameUikit,
			Description: "add @react-three/uikit",
			Active:      func(o *project.Options) bool { return o.Uikit.Active(false) },
			Run:         func(g project.Generator) error { return Uikit(g, g.Options().Uikit) },
		},
		{
			Name:        NameXR,
			Description: "add @react-three/xr",
			Active:      func(o *project.Options) bool { return o.XR.Active(false) },
			Run:         func(g project.Generator) error { return XR(g, g.Options().XR) },
		},
		{
			Name:        NameZustand,
			Description: "add zustand",
			Active:      func(o *project.Options) bool { return o.Zustand.Active(false) },
			Run:         func(g project.Generator) error { return Zustand(g, g.Options().Zustand) },
		},
		{
			Name:        NameFiber,
			Description: "add the example scene",
			Active:      func(o *project.Options) bool { return o.Fiber.Active(true) },
			Run:         func(g project.Generator) error { return Fiber(g, g.Options().Fiber) },
		},
		{
			Name:        NameGithubPages,
			Description: "add a GitHub Pages deployment workflow",
			Active:      func(o *project.Options) bool { return o.GithubPages.Active(true) },
			Run:         func(g project.Generator) error { return GithubPages(g, g.Options().GithubPages) },
		},
		{
			Name:        NameTriplex,
			Description: "set up triplex development environment",
			Active:      func(o *project.Options) bool { return o.Triplex.Active(false) },
			Run:         func(g project.Generator) error { return Triplex(g, g.Options().Triplex) },
		},
	}
}

// Catalog returns the integrations in the order the engine runs them.
func Catalog() []Integration {
	out := make([]Integration, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry called name.
func Lookup(name string) (Integration, bool) {
	for _, in := range catalog {
		if in.Name == name {
			return in, true
		}
	}
	return Integration{}, false
}

// Names returns the integration names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, in := range catalog {
		names[i] = in.Name
	}
	return names
}

// Enabled reports whether the integration called name will contribute to a
// run with opts, i.e. it is active and not suppressed.
func Enabled(opts *project.Options, name string) bool {
	in, ok := Lookup(name)
	if !ok || !in.Active(opts) {
		return false
	}
	_, suppressed := Suppressed(opts)[name]
	return !suppressed
}

// SetEnabled turns the integration called name on or off in opts. Slot
// options already present are dropped.
func SetEnabled(opts *project.Options, name string, on bool) error {
	state := project.SlotDisabled
	if on {
		state = project.SlotEnabled
	}
	switch name {
	case NameDrei:
		opts.Drei = project.Slot[project.DreiOptions]{State: state}
	case NameHandle:
		opts.Handle = project.Slot[project.HandleOptions]{State: state}
	case NameKoota:
		opts.Koota = project.Slot[project.KootaOptions]{State: state}
	case NameLeva:
		opts.Leva = project.Slot[project.LevaOptions]{State: state}
	case NameOffscreen:
		opts.Offscreen = project.Slot[project.OffscreenOptions]{State: state}
	case NamePostprocessing:
		opts.Postprocessing = project.Slot[project.PostprocessingOptions]{State: state}
	case NameRapier:
		opts.Rapier = project.Slot[project.RapierOptions]{State: state}
	case NameUikit:
		opts.Uikit = project.Slot[project.UikitOptions]{State: state}
	case NameXR:
		opts.XR = project.Slot[project.XROptions]{State: state}
	case NameZustand:
		opts.Zustand = project.Slot[project.ZustandOptions]{State: state}
	case NameFiber:
		opts.Fiber = project.Slot[project.FiberOptions]{State: state}
	case NameGithubPages:
		opts.GithubPages = project.Slot[project.GithubPagesOptions]{State: state}
	case NameTriplex:
		opts.Triplex = project.Slot[project.TriplexOptions]{State: state}
	default:
		return fmt.Errorf("unknown integration: %s", name)
	}
	return nil
}
