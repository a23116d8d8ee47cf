package integrations

import "github.com/react-three/create/internal/project"

// Drei adds the drei helper collection and an environment map.
func Drei(g project.Generator, slot project.Slot[project.DreiOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/drei", "^10.0.0")
	g.Inject(project.LocationImport, `import { Environment } from "@react-three/drei"`)
	g.Inject(project.LocationScene, `<Environment background preset="city" />`)
	g.Inject(project.LocationReadmeLibraries, "[@react-three/drei](https://drei.docs.pmnd.rs/) - Useful helpers for @react-three/fiber")
	return nil
}

// Handle adds interactive handles.
func Handle(g project.Generator, slot project.Slot[project.HandleOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/handle", "^6.6.16")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/handle](https://pmndrs.github.io/xr/docs/handles/introduction) - interactive controls and handles for your 3D objects")
	return nil
}

// Koota adds the koota ECS state library.
func Koota(g project.Generator, slot project.Slot[project.KootaOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("koota", "^0.4.0")
	g.Inject(project.LocationReadmeLibraries, "[koota](https://github.com/pmndrs/koota) - ECS-based state management library optimized for real-time apps, games, and XR experiences")
	return nil
}

// Leva adds the leva GUI panel, collapsed on top of the page.
func Leva(g project.Generator, slot project.Slot[project.LevaOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("leva", "^0.10.0")
	g.Inject(project.LocationImport, `import { Leva } from "leva"`)
	g.Inject(project.LocationDOM, "<Leva collapsed />")
	g.Inject(project.LocationReadmeLibraries, "[leva](https://github.com/pmndrs/leva) - HTML GUI panel for React with lightweight, beautiful and extensible controls")
	return nil
}

// Rapier adds the rapier physics bindings.
func Rapier(g project.Generator, slot project.Slot[project.RapierOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/rapier", "^2.1.0")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/rapier](https://github.com/pmndrs/react-three-rapier) - Physics based on Rapier for your @react-three/fiber scene")
	return nil
}

// Uikit adds the uikit UI primitives.
func Uikit(g project.Generator, slot project.Slot[project.UikitOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/uikit", "^0.8.15")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/uikit](https://pmndrs.github.io/uikit/docs/) - UI primitives for React Three Fiber")
	return nil
}

// Zustand adds the zustand state library.
func Zustand(g project.Generator, slot project.Slot[project.ZustandOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("zustand", "^5.0.3")
	g.Inject(project.LocationReadmeLibraries, "[zustand](https://zustand.docs.pmnd.rs/) - small, fast and scalable state-management solution")
	return nil
}

// Offscreen moves rendering to a worker. Not available together with XR.
func Offscreen(g project.Generator, slot project.Slot[project.OffscreenOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/offscreen", "^0.0.8")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/offscreen](https://github.com/pmndrs/offscreen) - Offload your scene to a worker thread for better performance")
	return nil
}

// Postprocessing adds an effect composer with bloom. Not available together with XR.
func Postprocessing(g project.Generator, slot project.Slot[project.PostprocessingOptions]) error {
	if !slot.Active(false) {
		return nil
	}
	g.AddDependency("@react-three/postprocessing", "^3.0.4")
	g.Inject(project.LocationImport, `import { Bloom, EffectComposer } from "@react-three/postprocessing"`)
	g.Inject(project.LocationScene, "<EffectComposer>\n  <Bloom luminanceThreshold={0.9} mipmapBlur />\n</EffectComposer>")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/postprocessing](https://react-postprocessing.docs.pmnd.rs/) - Post-processing effects for @react-three/fiber")
	return nil
}
