package app

import (
	"context"
	"fmt"
	"os"

	"github.com/OrbitalStation/rokoko/internal/cache"
	"github.com/OrbitalStation/rokoko/internal/ctxlog"
	"github.com/OrbitalStation/rokoko/internal/fsutil"
	"github.com/OrbitalStation/rokoko/internal/lock"
	"github.com/OrbitalStation/rokoko/internal/resolver"
	"github.com/OrbitalStation/rokoko/internal/toolchain"
)

// Run executes one resolution, and keeps re-running it on manifest changes
// when watch mode is enabled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	manifestPath, err := fsutil.FindManifest(a.config.ManifestPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Manifest located.", "path", manifestPath)

	if err := a.resolveOnce(ctx, manifestPath); err != nil {
		return err
	}

	if a.config.Watch {
		return a.watch(ctx, manifestPath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveOnce loads the manifest, resolves the dependency closure (through
// the cache when one is configured), and emits the lock.
func (a *App) resolveOnce(ctx context.Context, manifestPath string) error {
	channel, err := a.channel()
	if err != nil {
		return err
	}
	a.logger.Debug("Toolchain channel selected.", "channel", channel)

	format, err := lock.ParseFormat(a.config.LockFormat)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var key string
	if a.cache != nil {
		key = cache.Key(raw, a.config.Features, a.config.NoDefaults, channel)
		if cached, err := a.cache.Get(ctx, key); err != nil {
			a.logger.Warn("Cache lookup failed, resolving from scratch.", "error", err)
		} else if cached != nil {
			a.logger.Info("Resolution served from cache.", "key", key)
			return a.emit(cached, format)
		}
	}

	loader, err := loaderFor(manifestPath)
	if err != nil {
		return err
	}
	manifest, err := loader.Load(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	resolved, err := resolver.Resolve(ctx, manifest, resolver.Options{
		Features:   a.config.Features,
		NoDefaults: a.config.NoDefaults,
		Channel:    channel,
	})
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}
	a.logger.Info("Dependency closure resolved.",
		"package", resolved.Package,
		"channel", resolved.Channel,
		"features", resolved.Features,
		"dependencies", len(resolved.Deps))

	if a.cache != nil {
		if err := a.cache.Put(ctx, key, resolved); err != nil {
			a.logger.Warn("Failed to store resolution in cache.", "error", err)
		}
	}

	return a.emit(resolved, format)
}

// channel determines the active toolchain channel from config or, in auto
// mode, from the environment.
func (a *App) channel() (toolchain.Channel, error) {
	switch a.config.Channel {
	case "", "auto":
		return toolchain.Detect(), nil
	}
	c, ok := toolchain.Parse(a.config.Channel)
	if !ok {
		return "", fmt.Errorf("unknown toolchain channel '%s'", a.config.Channel)
	}
	return c, nil
}

// emit writes the lock to the configured path, or to stdout when no path
// was given.
func (a *App) emit(l *lock.Lock, format lock.Format) error {
	if a.config.LockPath == "" {
		data, err := l.Encode(format)
		if err != nil {
			return err
		}
		_, err = a.outW.Write(data)
		return err
	}

	if err := l.Write(a.config.LockPath, format); err != nil {
		return err
	}
	a.logger.Info("Lock written.", "path", a.config.LockPath)
	return nil
}
