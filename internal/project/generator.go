package project

// Expr is a configuration value emitted as a raw code expression (for example
// a plugin constructor call) instead of a JSON literal.
type Expr string

// ViteConfig is a partial or accumulated bundler configuration tree. Values
// are maps, slices, JSON scalars or Expr nodes.
type ViteConfig = map[string]any

// Generator is the assembly surface handed to every integration.
type Generator interface {
	// Options returns the request snapshot of the current run. Integrations
	// read it to make cross-integration decisions and must not modify it.
	Options() *Options

	// AddDependency records a dependency. The last writer wins.
	AddDependency(name, versionRange string)

	// AddFile adds or replaces the file at path.
	AddFile(path string, file File)

	// Inject appends a code fragment to the fragment list of location.
	Inject(location Location, code string)

	// Replace registers a literal substitution for the entry component.
	Replace(search, replace string)

	// ConfigureVite deep merges partial into the bundler configuration.
	ConfigureVite(partial ViteConfig) error
}
