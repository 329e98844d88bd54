// Translation from the HCL schema structs into the format-agnostic model
// defined in the config package.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/OrbitalStation/rokoko/internal/config"
	"github.com/OrbitalStation/rokoko/internal/schema"
)

func (l *Loader) translate(raw *schema.Manifest) (*config.Manifest, error) {
	if raw.Package == nil {
		return nil, fmt.Errorf("manifest has no package block")
	}

	m := &config.Manifest{
		Package: &config.Package{
			Name:    raw.Package.Name,
			Version: raw.Package.Version,
		},
		Dependencies: make(map[string]*config.Dependency),
		Features:     make(map[string]*config.Feature),
	}

	for _, dep := range raw.Dependencies {
		translated, err := translateDependency(dep)
		if err != nil {
			return nil, err
		}
		if _, exists := m.Dependencies[dep.Name]; exists {
			return nil, fmt.Errorf("dependency '%s' is declared more than once", dep.Name)
		}
		m.Dependencies[dep.Name] = translated
	}

	for _, feat := range raw.Features {
		enables, err := stringList(feat.Enables, fmt.Sprintf("feature '%s' enables", feat.Name))
		if err != nil {
			return nil, err
		}
		if _, exists := m.Features[feat.Name]; exists {
			return nil, fmt.Errorf("feature '%s' is declared more than once", feat.Name)
		}
		m.Features[feat.Name] = &config.Feature{
			Name:    feat.Name,
			Enables: enables,
		}
	}

	defaults, err := stringList(raw.DefaultFeatures, "default_features")
	if err != nil {
		return nil, err
	}
	m.DefaultFeatures = defaults

	for _, cond := range raw.Conditionals {
		translated := &config.Conditional{
			Channel:      cond.Channel,
			Dependencies: make(map[string]*config.Dependency),
		}
		for _, dep := range cond.Dependencies {
			td, err := translateDependency(dep)
			if err != nil {
				return nil, fmt.Errorf("in when '%s' block: %w", cond.Channel, err)
			}
			if _, exists := translated.Dependencies[dep.Name]; exists {
				return nil, fmt.Errorf("in when '%s' block: dependency '%s' is declared more than once", cond.Channel, dep.Name)
			}
			translated.Dependencies[dep.Name] = td
		}
		m.Conditionals = append(m.Conditionals, translated)
	}

	return m, nil
}

func translateDependency(dep *schema.Dependency) (*config.Dependency, error) {
	features, err := stringList(dep.Features, fmt.Sprintf("dependency '%s' features", dep.Name))
	if err != nil {
		return nil, err
	}
	return &config.Dependency{
		Name:       dep.Name,
		Constraint: dep.Constraint,
		Optional:   dep.Optional,
		Features:   features,
	}, nil
}

// stringList evaluates a list-of-strings attribute expression. A missing
// attribute yields a nil slice.
func stringList(expr hcl.Expression, what string) ([]string, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate %s: %w", what, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("%s must be a list of strings", what)
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String || elem.IsNull() {
			return nil, fmt.Errorf("%s must contain only strings", what)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
