package engine

// baselineDependencies are present in every generated project.
var baselineDependencies = map[string]string{
	"three":                "~0.175.0",
	"@react-three/fiber":   "^9.0.0",
	"react-dom":            "^19.0.0",
	"react":                "^19.0.0",
	"vite":                 "^6.3.4",
	"@vitejs/plugin-react": "^4.4.1",
}

// typeDependencies are added for TypeScript projects.
var typeDependencies = map[string]string{
	"@types/three":     "~0.175.0",
	"@types/react-dom": "^19.0.0",
	"@types/react":     "^19.0.0",
}

const (
	canvasImport    = `import { Canvas } from "@react-three/fiber"`
	viteReactImport = "import react from '@vitejs/plugin-react'"
	viteImport      = "import { defineConfig } from 'vite'"
)

var gitIgnore = []string{"node_modules", "dist"}

var gitAttributes = []string{
	"* text eol=lf",
	"*.png binary",
	"*.jpg binary",
	"*.jpeg binary",
	"*.gif binary",
	"*.ico binary",
	"*.mov binary",
	"*.mp4 binary",
	"*.mp3 binary",
	"*.flv binary",
	"*.fla binary",
	"*.wav binary",
	"*.swf binary",
	"*.gz binary",
	"*.zip binary",
	"*.7z binary",
	"*.ttf binary",
	"*.eot binary",
	"*.woff binary",
	"*.pyc binary",
	"*.pdf binary",
	"*.glb binary",
	"*.gltf binary",
}

const indexTS = `import { StrictMode } from 'react'
import { createRoot } from 'react-dom/client'
import { App } from './app.js'

createRoot(document.getElementById('root')!).render(
  <StrictMode>
    <App />
  </StrictMode>,
)
`

const indexJS = `import { StrictMode } from 'react'
import { createRoot } from 'react-dom/client'
import { App } from './app.js'

createRoot(document.getElementById('root')).render(
  <StrictMode>
    <App />
  </StrictMode>,
)
`

// README building blocks.
var (
	readmeGeneratedBy = "This project was generated with [react-three.org](https://react-three.org)"

	readmeBaselineLibraries = []string{
		"[React](https://react.dev/) - A JavaScript library for building user interfaces",
		"[Three.js](https://threejs.org/) - JavaScript 3D library",
		"[@react-three/fiber](https://docs.pmnd.rs/react-three-fiber) - lets you create Three.js scenes using React components",
	}
)

type tsconfigCompilerOptions struct {
	Target           string `json:"target"`
	Module           string `json:"module"`
	ModuleResolution string `json:"moduleResolution"`
	ESModuleInterop  bool   `json:"esModuleInterop"`
	JSX              string `json:"jsx"`
	Strict           bool   `json:"strict"`
	SkipLibCheck     bool   `json:"skipLibCheck"`
	OutDir           string `json:"outDir"`
}

type tsconfig struct {
	CompilerOptions tsconfigCompilerOptions `json:"compilerOptions"`
	Include         []string                `json:"include"`
}

var defaultTSConfig = tsconfig{
	CompilerOptions: tsconfigCompilerOptions{
		Target:           "ESNext",
		Module:           "ESNext",
		ModuleResolution: "bundler",
		ESModuleInterop:  true,
		JSX:              "react-jsx",
		Strict:           true,
		SkipLibCheck:     true,
		OutDir:           "dist",
	},
	Include: []string{"src/**/*"},
}
