// Package version validates dependency version constraints and reports
// conflicts between duplicate declarations of the same dependency.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ConflictError is returned when one dependency is declared more than once
// with constraints that do not agree.
type ConflictError struct {
	Dependency string
	A, B       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dependency '%s': conflicting version constraints '%s' and '%s'", e.Dependency, e.A, e.B)
}

// Validate checks that a constraint string is well-formed semver range
// syntax. An empty constraint is allowed and means "any version".
func Validate(dep, constraint string) error {
	if constraint == "" {
		return nil
	}
	if _, err := semver.NewConstraint(constraint); err != nil {
		return fmt.Errorf("dependency '%s': invalid version constraint '%s': %w", dep, constraint, err)
	}
	return nil
}

// Merge reconciles two constraint strings for the same dependency. A
// declaration without a constraint defers to the other; otherwise the
// constraints must be identical, since resolution has no registry of
// published versions to intersect ranges against.
func Merge(dep, a, b string) (string, error) {
	if a == "" {
		return b, nil
	}
	if b == "" || a == b {
		return a, nil
	}
	return "", &ConflictError{Dependency: dep, A: a, B: b}
}

// Satisfies reports whether a concrete version is allowed by a constraint.
// Resolution itself never picks versions; this exists for auditing a
// resolved lock against concrete versions.
func Satisfies(version, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
