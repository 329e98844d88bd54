package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/OrbitalStation/rokoko/internal/cache"
	"github.com/OrbitalStation/rokoko/internal/config"
	hclloader "github.com/OrbitalStation/rokoko/internal/hcl"
	yamlloader "github.com/OrbitalStation/rokoko/internal/yaml"
)

// App encapsulates the resolver's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	cache  *cache.Store
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Startup failures
// (an unopenable cache database) panic; the CLI entrypoint recovers them
// into a clean exit.
func NewApp(outW, errW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig, errW)
	logger.Debug("Logger configured successfully.")

	var store *cache.Store
	if appConfig.CachePath != "" {
		var err error
		store, err = cache.Open(appConfig.CachePath)
		if err != nil {
			panic(fmt.Errorf("failed to open resolution cache: %w", err))
		}
		logger.Debug("Resolution cache opened.", "path", appConfig.CachePath)
	}

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: appConfig,
		cache:  store,
	}
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// loaderFor picks a manifest loader from the file extension.
func loaderFor(path string) (config.Loader, error) {
	switch filepath.Ext(path) {
	case ".hcl":
		return hclloader.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlloader.NewLoader(), nil
	}
	return nil, fmt.Errorf("unsupported manifest format '%s': expected .hcl, .yaml or .yml", filepath.Ext(path))
}
