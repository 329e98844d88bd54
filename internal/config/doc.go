// Package config defines the format-agnostic manifest model for the
// resolver, along with the Loader interface for reading manifests from
// concrete formats.
//
// The config.Manifest is the single source of truth for the resolver
// package. Concrete loaders, such as for HCL and YAML, live in separate
// packages so the model never depends on a parser.
package config
