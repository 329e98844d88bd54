// Package schema holds the HCL tag structs a manifest file decodes into,
// before translation into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Manifest is the top-level structure of a rokoko.hcl file.
type Manifest struct {
	Package *Package `hcl:"package,block"`

	Dependencies []*Dependency `hcl:"dependency,block"`
	Features     []*Feature    `hcl:"feature,block"`

	// DefaultFeatures is kept as an expression so the loader evaluates it
	// through cty, like every other list attribute.
	DefaultFeatures hcl.Expression `hcl:"default_features,optional"`

	Conditionals []*Conditional `hcl:"when,block"`
}

// Package is the `package {}` block.
type Package struct {
	Name    string `hcl:"name"`
	Version string `hcl:"version,optional"`
}

// Dependency is a labeled `dependency "name" {}` block, used both at the
// top level and inside conditional blocks.
type Dependency struct {
	Name       string         `hcl:"name,label"`
	Constraint string         `hcl:"constraint,optional"`
	Optional   bool           `hcl:"optional,optional"`
	Features   hcl.Expression `hcl:"features,optional"`
}

// Feature is a labeled `feature "name" {}` block.
type Feature struct {
	Name    string         `hcl:"name,label"`
	Enables hcl.Expression `hcl:"enables,optional"`
}

// Conditional is a `when "channel" {}` block whose dependencies apply only
// when the active toolchain channel matches the label.
type Conditional struct {
	Channel      string        `hcl:"channel,label"`
	Dependencies []*Dependency `hcl:"dependency,block"`
}
