package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional manifest path", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"./rokoko.hcl"}, &out)
		require.NoError(t, err)
		assert.False(t, exit)
		require.NotNil(t, cfg)
		assert.Equal(t, "./rokoko.hcl", cfg.ManifestPath)
		assert.Equal(t, "auto", cfg.Channel)
		assert.Equal(t, "json", cfg.LockFormat)
		assert.Nil(t, cfg.Features)
		assert.False(t, cfg.NoDefaults)
	})

	t.Run("manifest flag wins over positional", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-manifest", "a.hcl", "b.hcl"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ManifestPath)
	})

	t.Run("features are split and trimmed", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-features", " math, window ,", "m.hcl"}, &out)
		require.NoError(t, err)
		assert.Equal(t, []string{"math", "window"}, cfg.Features)
	})

	t.Run("no-default-features", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-no-default-features", "m.hcl"}, &out)
		require.NoError(t, err)
		assert.True(t, cfg.NoDefaults)
		assert.Nil(t, cfg.Features)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid channel", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-channel", "beta", "m.hcl"}, &out)
		require.Error(t, err)

		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid channel")
	})

	t.Run("invalid lock format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-lock-format", "toml", "m.hcl"}, &out)
		assert.ErrorContains(t, err, "invalid lock-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "verbose", "m.hcl"}, &out)
		assert.ErrorContains(t, err, "invalid log-level")
	})

	t.Run("watch without lock path is rejected", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-watch", "m.hcl"}, &out)
		assert.ErrorContains(t, err, "watch mode requires a lock output path")
	})
}
