package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrbitalStation/rokoko/internal/lock"
)

const testManifest = `
package {
  name    = "rokoko"
  version = "0.1.0"
}

dependency "winit" {
  constraint = "0.26"
  optional   = true
}

dependency "raw-window-handle" {
  constraint = "0.4.2"
  optional   = true
}

feature "math" {}

feature "window" {
  enables = ["winit", "raw-window-handle"]
}

default_features = ["math", "window"]
`

func writeTestManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rokoko.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o600))
	return path
}

func TestRun_ResolvesManifest(t *testing.T) {
	path := writeTestManifest(t)
	out := &bytes.Buffer{}

	require.NoError(t, run(out, []string{"-channel", "stable", path}))

	var got lock.Lock
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "rokoko", got.Package)
	assert.Equal(t, []string{"math", "window"}, got.Features)
	assert.True(t, got.HasDependency("winit"))
	assert.True(t, got.HasDependency("raw-window-handle"))
}

func TestRun_UnknownFeatureFails(t *testing.T) {
	path := writeTestManifest(t)
	out := &bytes.Buffer{}

	err := run(out, []string{"-features", "graphics", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature 'graphics'")
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_StartupPanicRecovery(t *testing.T) {
	path := writeTestManifest(t)
	out := &bytes.Buffer{}

	// A cache path inside a directory that does not exist makes app.NewApp
	// panic; run() must recover it into a regular error.
	badCache := filepath.Join(t.TempDir(), "missing", "nested", "cache.db")
	err := run(out, []string{"-cache", badCache, path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "application startup panicked")
}
