package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/OrbitalStation/rokoko/internal/config"
	"github.com/OrbitalStation/rokoko/internal/ctxlog"
	"github.com/OrbitalStation/rokoko/internal/featgraph"
	"github.com/OrbitalStation/rokoko/internal/lock"
	"github.com/OrbitalStation/rokoko/internal/toolchain"
	"github.com/OrbitalStation/rokoko/internal/version"
)

// UnknownFeatureError is returned when a requested or referenced feature
// name matches nothing in the manifest.
type UnknownFeatureError struct {
	Name string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature '%s'", e.Name)
}

// Options control one resolution run.
type Options struct {
	// Features are the explicitly requested feature flags. They are added
	// on top of the manifest's default set unless NoDefaults is set.
	Features []string

	// NoDefaults suppresses the manifest's default feature set, so only
	// explicitly requested features are active.
	NoDefaults bool

	// Channel is the active toolchain channel the conditional dependency
	// blocks are keyed on.
	Channel toolchain.Channel
}

// Resolve computes the dependency closure for the manifest under the given
// options and returns it as a lock.
func Resolve(ctx context.Context, m *config.Manifest, opts Options) (*lock.Lock, error) {
	logger := ctxlog.FromContext(ctx)

	if err := validate(m); err != nil {
		return nil, err
	}

	graph, activations, err := buildFeatureGraph(m)
	if err != nil {
		return nil, err
	}
	if err := graph.DetectCycles(); err != nil {
		return nil, err
	}

	roots, err := requestedRoots(m, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Feature roots determined.", "roots", roots)

	active, err := graph.Closure(roots)
	if err != nil {
		// Closure roots were validated above, so any failure here is a bug.
		return nil, fmt.Errorf("internal error walking feature closure: %w", err)
	}
	logger.Debug("Feature closure computed.", "active", active)

	resolved, err := collectDependencies(m, active, activations)
	if err != nil {
		return nil, err
	}

	if err := mergeConditionals(m, opts.Channel, resolved); err != nil {
		return nil, err
	}

	l := &lock.Lock{
		Package:  m.Package.Name,
		Version:  m.Package.Version,
		Channel:  string(opts.Channel),
		Features: active,
	}
	for _, d := range resolved {
		l.Deps = append(l.Deps, *d)
	}
	l.Normalize()

	logger.Debug("Resolution finished.", "dependencies", len(l.Deps), "features", len(l.Features))
	return l, nil
}

// validate performs structural checks over the manifest: package identity,
// well-formed constraints, and feature lists that reference real things.
// Problems are collected and reported together.
func validate(m *config.Manifest) error {
	var errs []string

	if m.Package == nil || m.Package.Name == "" {
		errs = append(errs, "manifest is missing a package name")
	}

	for name, dep := range m.Dependencies {
		if err := version.Validate(name, dep.Constraint); err != nil {
			errs = append(errs, err.Error())
		}
	}
	for _, cond := range m.Conditionals {
		if _, ok := toolchain.Parse(cond.Channel); !ok {
			errs = append(errs, fmt.Sprintf("conditional block references unknown channel '%s'", cond.Channel))
		}
		for name, dep := range cond.Dependencies {
			if err := version.Validate(name, dep.Constraint); err != nil {
				errs = append(errs, err.Error())
			}
		}
	}

	for _, feat := range m.Features {
		for _, target := range feat.Enables {
			if _, ok := m.Features[target]; ok {
				continue
			}
			if dep, ok := m.Dependencies[target]; ok {
				if !dep.Optional {
					errs = append(errs, fmt.Sprintf("feature '%s' enables dependency '%s' which is not optional", feat.Name, target))
				}
				continue
			}
			errs = append(errs, fmt.Sprintf("feature '%s' enables '%s' which is neither a feature nor an optional dependency", feat.Name, target))
		}
	}

	for _, name := range m.DefaultFeatures {
		if _, ok := m.Features[name]; !ok {
			errs = append(errs, fmt.Sprintf("default feature '%s' is not defined", name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("manifest validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// buildFeatureGraph turns the manifest's features into a graph of
// feature-to-feature edges, and separately maps each feature to the
// optional dependencies it activates.
func buildFeatureGraph(m *config.Manifest) (*featgraph.Graph, map[string][]string, error) {
	graph := featgraph.New()
	activations := make(map[string][]string)

	for name := range m.Features {
		graph.AddFeature(name)
	}
	for _, feat := range m.Features {
		for _, target := range feat.Enables {
			if _, ok := m.Features[target]; ok {
				if err := graph.AddEnables(feat.Name, target); err != nil {
					return nil, nil, err
				}
				continue
			}
			// Validated earlier: anything else is an optional dependency.
			activations[feat.Name] = append(activations[feat.Name], target)
		}
	}
	for feat := range activations {
		sort.Strings(activations[feat])
	}
	return graph, activations, nil
}

// requestedRoots expands the options into the concrete set of root
// features, validating every name against the manifest.
func requestedRoots(m *config.Manifest, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var roots []string

	add := func(name string) error {
		if _, ok := m.Features[name]; !ok {
			return &UnknownFeatureError{Name: name}
		}
		if !seen[name] {
			seen[name] = true
			roots = append(roots, name)
		}
		return nil
	}

	if !opts.NoDefaults {
		for _, name := range m.DefaultFeatures {
			if err := add(name); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range opts.Features {
		if err := add(name); err != nil {
			return nil, err
		}
	}

	sort.Strings(roots)
	return roots, nil
}

// collectDependencies assembles the baseline closure: every non-optional
// dependency, plus each optional dependency activated by an active feature.
func collectDependencies(m *config.Manifest, active []string, activations map[string][]string) (map[string]*lock.ResolvedDependency, error) {
	resolved := make(map[string]*lock.ResolvedDependency)

	for name, dep := range m.Dependencies {
		if dep.Optional {
			continue
		}
		resolved[name] = &lock.ResolvedDependency{
			Name:       name,
			Constraint: dep.Constraint,
			Features:   append([]string(nil), dep.Features...),
			Source:     lock.SourceAlways,
		}
	}

	for _, feat := range active {
		for _, target := range activations[feat] {
			dep := m.Dependencies[target]
			if existing, ok := resolved[target]; ok {
				// Activated by more than one feature: keep the first
				// activator in sorted feature order for determinism.
				if existing.Source == lock.SourceFeature && feat < existing.ActivatedBy {
					existing.ActivatedBy = feat
				}
				continue
			}
			resolved[target] = &lock.ResolvedDependency{
				Name:        target,
				Constraint:  dep.Constraint,
				Features:    append([]string(nil), dep.Features...),
				Source:      lock.SourceFeature,
				ActivatedBy: feat,
			}
		}
	}

	return resolved, nil
}

// mergeConditionals applies every conditional block whose predicate matches
// the active channel. A matching block's dependency is merged over the
// baseline entry when one exists, or added to the closure when it does not.
func mergeConditionals(m *config.Manifest, channel toolchain.Channel, resolved map[string]*lock.ResolvedDependency) error {
	for _, cond := range m.Conditionals {
		condChannel, _ := toolchain.Parse(cond.Channel)
		if condChannel != channel {
			continue
		}

		// Deterministic merge order.
		names := make([]string, 0, len(cond.Dependencies))
		for name := range cond.Dependencies {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			dep := cond.Dependencies[name]
			existing, ok := resolved[name]
			if !ok {
				resolved[name] = &lock.ResolvedDependency{
					Name:        name,
					Constraint:  dep.Constraint,
					Features:    append([]string(nil), dep.Features...),
					Source:      lock.SourceChannel,
					ActivatedBy: cond.Channel,
				}
				continue
			}

			merged, err := version.Merge(name, existing.Constraint, dep.Constraint)
			if err != nil {
				return err
			}
			existing.Constraint = merged
			existing.Features = unionStrings(existing.Features, dep.Features)
			existing.Source = lock.SourceChannel
			existing.ActivatedBy = cond.Channel
		}
	}
	return nil
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
