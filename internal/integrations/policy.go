package integrations

import (
	"fmt"

	"github.com/react-three/create/internal/project"
)

// xrIncompatible lists integrations that cannot run inside an XR session,
// with the package named in the notice.
var xrIncompatible = []struct {
	name    string
	pkg     string
	enabled func(*project.Options) bool
}{
	{name: NameOffscreen, pkg: "@react-three/offscreen", enabled: func(o *project.Options) bool { return o.Offscreen.Active(false) }},
	{name: NamePostprocessing, pkg: "@react-three/postprocessing", enabled: func(o *project.Options) bool { return o.Postprocessing.Active(false) }},
}

// Suppressed returns the integrations that are requested but disabled by
// policy, mapped to the reason. It only reads opts.
func Suppressed(opts *project.Options) map[string]string {
	out := map[string]string{}
	if !opts.XR.Active(false) {
		return out
	}
	for _, in := range xrIncompatible {
		if in.enabled(opts) {
			out[in.name] = fmt.Sprintf("%s is disabled because it is not supported with XR", in.pkg)
		}
	}
	return out
}
