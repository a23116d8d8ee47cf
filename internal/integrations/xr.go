package integrations

import (
	"encoding/json"
	"fmt"

	"github.com/react-three/create/internal/project"
)

const xrButtons = `<div style={{
  display: "flex",
  flexDirection: "row",
  gap: "1rem",
  position: "absolute",
  zIndex: 10000,
  background: "black",
  borderRadius: "0.5rem",
  border: "none",
  fontWeight: "bold",
  color: "white",
  cursor: "pointer",
  fontSize: "1.5rem",
  bottom: "1rem",
  left: "50%",
  boxShadow: "0px 0px 20px rgba(0,0,0,1)",
  transform: "translate(-50%, 0)",
}}>
  <button style={{ padding: "1rem 2rem" }} onClick={() => store.enterAR()}>
    Enter AR
  </button>
  <button style={{ padding: "1rem 2rem" }} onClick={() => store.enterVR()}>
    Enter VR
  </button>
</div>`

// XR wraps the scene in an XR session, adds enter buttons and serves the dev
// server over https on the local network so headsets can reach it.
func XR(g project.Generator, slot project.Slot[project.XROptions]) error {
	if !slot.Active(false) {
		return nil
	}

	storeOptions := slot.Options.StoreOptions
	if storeOptions == nil {
		storeOptions = map[string]any{}
	}
	encoded, err := json.Marshal(storeOptions)
	if err != nil {
		return fmt.Errorf("failed to encode xr store options: %w", err)
	}

	g.AddDependency("@react-three/xr", "^6.6.16")
	g.AddDependency("@vitejs/plugin-basic-ssl", "^2.0.0")
	g.Inject(project.LocationImport, `import { XR, createXRStore } from "@react-three/xr"`)
	g.Inject(project.LocationGlobalStart, fmt.Sprintf("const store = createXRStore(%s)", encoded))
	g.Inject(project.LocationSceneStart, "<XR store={store}>")
	g.Inject(project.LocationSceneEnd, "</XR>")
	g.Inject(project.LocationDOMStart, xrButtons)
	g.Inject(project.LocationViteConfigImport, "import basicSsl from '@vitejs/plugin-basic-ssl'")
	g.Inject(project.LocationReadmeLibraries, "[@react-three/xr](https://pmndrs.github.io/xr/docs/) - VR/AR support for @react-three/fiber")

	return g.ConfigureVite(project.ViteConfig{
		"server":  map[string]any{"host": true},
		"plugins": []any{project.Expr("basicSsl()")},
	})
}
