// Package hcl loads package manifests written in HCL and translates them
// into the format-agnostic config model.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/OrbitalStation/rokoko/internal/config"
	"github.com/OrbitalStation/rokoko/internal/ctxlog"
	"github.com/OrbitalStation/rokoko/internal/schema"
)

// Loader implements config.Loader for HCL manifests.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest at path and translates it into the model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse manifest '%s': %w", path, diags)
	}

	var raw schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode manifest '%s': %w", path, diags)
	}

	m, err := l.translate(&raw)
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
