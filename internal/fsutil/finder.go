// Package fsutil provides file system helpers for locating manifests.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// manifestNames are the file names probed, in order, when a directory is
// given instead of a manifest file.
var manifestNames = []string{"rokoko.hcl", "rokoko.yaml", "rokoko.yml"}

// FindManifest resolves a user-supplied path to a concrete manifest file.
// A file path is returned as-is; a directory is probed for the well-known
// manifest names.
func FindManifest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat manifest path: %w", err)
	}

	if !info.IsDir() {
		return path, nil
	}

	for _, name := range manifestNames {
		candidate := filepath.Join(path, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no manifest found in '%s' (looked for %v)", path, manifestNames)
}
