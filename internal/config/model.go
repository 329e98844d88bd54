package config

// Manifest is the unified, format-agnostic representation of a package
// manifest: the package identity, its dependencies, its feature flags, and
// any toolchain-conditional dependency blocks.
type Manifest struct {
	Package         *Package
	Dependencies    map[string]*Dependency
	Features        map[string]*Feature
	DefaultFeatures []string
	Conditionals    []*Conditional

	// Path is the file the manifest was loaded from, for error reporting
	// and for watch mode.
	Path string
}

// Package identifies the package the manifest describes.
type Package struct {
	Name    string
	Version string
}

// Dependency describes one external dependency: its version constraint,
// whether it is optional (pulled in only by a feature), and the capability
// flags to enable on it.
type Dependency struct {
	Name       string
	Constraint string
	Optional   bool
	Features   []string
}

// Feature is a named build-time toggle. Its Enables list names other
// features or optional dependencies that activating this feature activates.
type Feature struct {
	Name    string
	Enables []string
}

// Conditional is a dependency block gated on a toolchain-channel predicate.
// Its dependencies are merged over the baseline set when the predicate
// matches the active channel.
type Conditional struct {
	Channel      string
	Dependencies map[string]*Dependency
}

// Dependency returns the named dependency, looking through baseline
// declarations only. Conditional blocks are consulted by the resolver.
func (m *Manifest) Dependency(name string) (*Dependency, bool) {
	d, ok := m.Dependencies[name]
	return d, ok
}

// Feature returns the named feature flag.
func (m *Manifest) Feature(name string) (*Feature, bool) {
	f, ok := m.Features[name]
	return f, ok
}
