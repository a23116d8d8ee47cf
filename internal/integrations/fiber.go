package integrations

import (
	"strings"

	"github.com/react-three/create/internal/project"
)

var exampleScene = strings.Join([]string{
	`<ambientLight intensity={Math.PI / 2} />`,
	`<spotLight position={[10, 10, 10]} angle={0.15} penumbra={1} decay={0} intensity={Math.PI} />`,
	`<pointLight position={[-10, -10, -10]} decay={0} intensity={Math.PI} />`,
	`<Box position={[-1.2, 0, 0]} />`,
	`<Box position={[1.2, 0, 0]} />`,
}, "\n")

// Fiber adds the example scene: a few lights and two clickable boxes. It runs
// unless the slot is disabled or addExample is false.
func Fiber(g project.Generator, slot project.Slot[project.FiberOptions]) error {
	if !slot.Active(true) {
		return nil
	}
	if add := slot.Options.AddExample; add != nil && !*add {
		return nil
	}

	lang := g.Options().Language
	box, err := render("box.tmpl", map[string]any{
		"TypeScript": !lang.IsJavaScript(),
		"Color":      "#2f74c0",
	})
	if err != nil {
		return err
	}

	g.Inject(project.LocationImport, `import { Box } from "./box.js"`)
	g.Inject(project.LocationScene, exampleScene)
	g.AddFile("src/box"+lang.SourceExt(), project.TextFile(box))
	return nil
}
