package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // manifest file, or a directory containing one

	Features   []string
	NoDefaults bool
	Channel    string // "auto", "stable" or "nightly"

	LockPath   string // empty means write the lock to stdout
	LockFormat string // "json" or "yaml"
	CachePath  string // empty disables the resolution cache
	Watch      bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Watch && cfg.LockPath == "" {
		return nil, errors.New("watch mode requires a lock output path")
	}
	return &cfg, nil
}
