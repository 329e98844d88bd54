// Package yaml loads package manifests written in YAML. It produces the
// same config model as the HCL loader; the resolver never knows which
// format a manifest came from.
package yaml

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OrbitalStation/rokoko/internal/config"
	"github.com/OrbitalStation/rokoko/internal/ctxlog"
)

// rawManifest mirrors the YAML document layout.
type rawManifest struct {
	Package *struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Dependencies    map[string]*rawDependency  `yaml:"dependencies"`
	Features        map[string][]string        `yaml:"features"`
	DefaultFeatures []string                   `yaml:"default_features"`
	When            map[string]*rawConditional `yaml:"when"`
}

type rawDependency struct {
	Constraint string   `yaml:"constraint"`
	Optional   bool     `yaml:"optional"`
	Features   []string `yaml:"features"`
}

type rawConditional struct {
	Dependencies map[string]*rawDependency `yaml:"dependencies"`
}

// Loader implements config.Loader for YAML manifests.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest at path and translates it into the model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing YAML manifest.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest '%s': %w", path, err)
	}

	var raw rawManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode manifest '%s': %w", path, err)
	}

	m, err := translate(&raw)
	if err != nil {
		return nil, fmt.Errorf("manifest '%s': %w", path, err)
	}
	m.Path = path

	logger.Debug("Manifest loaded.",
		"package", m.Package.Name,
		"dependencies", len(m.Dependencies),
		"features", len(m.Features))
	return m, nil
}

func translate(raw *rawManifest) (*config.Manifest, error) {
	if raw.Package == nil || raw.Package.Name == "" {
		return nil, fmt.Errorf("manifest has no package block")
	}

	m := &config.Manifest{
		Package: &config.Package{
			Name:    raw.Package.Name,
			Version: raw.Package.Version,
		},
		Dependencies:    make(map[string]*config.Dependency),
		Features:        make(map[string]*config.Feature),
		DefaultFeatures: raw.DefaultFeatures,
	}

	for name, dep := range raw.Dependencies {
		m.Dependencies[name] = translateDependency(name, dep)
	}
	for name, enables := range raw.Features {
		m.Features[name] = &config.Feature{
			Name:    name,
			Enables: enables,
		}
	}
	for channel, cond := range raw.When {
		translated := &config.Conditional{
			Channel:      channel,
			Dependencies: make(map[string]*config.Dependency),
		}
		for name, dep := range cond.Dependencies {
			translated.Dependencies[name] = translateDependency(name, dep)
		}
		m.Conditionals = append(m.Conditionals, translated)
	}

	return m, nil
}

func translateDependency(name string, dep *rawDependency) *config.Dependency {
	if dep == nil {
		return &config.Dependency{Name: name}
	}
	return &config.Dependency{
		Name:       name,
		Constraint: dep.Constraint,
		Optional:   dep.Optional,
		Features:   dep.Features,
	}
}
