package lock

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the lock encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown lock format '%s': must be 'json' or 'yaml'", s)
}

// Encode renders the lock in the given format. The lock is normalized
// first, so output is deterministic.
func (l *Lock) Encode(format Format) ([]byte, error) {
	l.Normalize()

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return nil, fmt.Errorf("encode lock as JSON: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("encode lock as YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown lock format '%s'", format)
}

// Write encodes the lock and writes it to path atomically. A crash or a
// concurrent reader never observes a partially written lock.
func (l *Lock) Write(path string, format Format) error {
	data, err := l.Encode(format)
	if err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending lock file: %w", err)
	}
	defer func() {
		// Removes the temp file when the replace below did not happen.
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write lock data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace lock file: %w", err)
	}
	return nil
}
