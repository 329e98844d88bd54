package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated logger from the already-validated
// configuration. It does not touch the global default logger. The CLI
// guarantees the level and format values; when App is constructed directly
// with something else, the logger falls back to info/text rather than
// failing startup over a log option.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
