// Package lock defines the resolved-closure artifact produced by a
// resolution run and its serialized forms.
package lock

import (
	"sort"
)

// Source describes what pulled a dependency into the closure.
type Source string

const (
	// SourceAlways marks a non-optional dependency, present in every build.
	SourceAlways Source = "always"

	// SourceFeature marks an optional dependency activated by a feature
	// flag. The Lock records which flag in ResolvedDependency.ActivatedBy.
	SourceFeature Source = "feature"

	// SourceChannel marks a dependency contributed or modified by a
	// toolchain-conditional block.
	SourceChannel Source = "channel"
)

// ResolvedDependency is one entry of the resolved closure.
type ResolvedDependency struct {
	Name        string   `json:"name" yaml:"name"`
	Constraint  string   `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	Source      Source   `json:"source" yaml:"source"`
	ActivatedBy string   `json:"activated_by,omitempty" yaml:"activated_by,omitempty"`
}

// Lock is the deterministic output of one resolution run. Two runs over the
// same manifest, feature set, and channel produce byte-identical locks.
type Lock struct {
	Package  string               `json:"package" yaml:"package"`
	Version  string               `json:"version" yaml:"version"`
	Channel  string               `json:"channel" yaml:"channel"`
	Features []string             `json:"features" yaml:"features"`
	Deps     []ResolvedDependency `json:"dependencies" yaml:"dependencies"`
}

// Normalize sorts every list in the lock so encoding is deterministic.
func (l *Lock) Normalize() {
	sort.Strings(l.Features)
	for i := range l.Deps {
		sort.Strings(l.Deps[i].Features)
	}
	sort.Slice(l.Deps, func(i, j int) bool {
		return l.Deps[i].Name < l.Deps[j].Name
	})
}

// Dependency returns the resolved entry for the given name.
func (l *Lock) Dependency(name string) (ResolvedDependency, bool) {
	for _, d := range l.Deps {
		if d.Name == name {
			return d, true
		}
	}
	return ResolvedDependency{}, false
}

// HasDependency reports whether the closure contains the named dependency.
func (l *Lock) HasDependency(name string) bool {
	_, ok := l.Dependency(name)
	return ok
}
