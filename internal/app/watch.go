package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce absorbs the bursts of events editors emit for a single save.
const debounce = 200 * time.Millisecond

// watch re-resolves whenever the manifest file changes, until the context
// is canceled. A failed re-resolution is logged and the previous lock stays
// in place; watch mode never commits a half-valid configuration.
func (a *App) watch(ctx context.Context, manifestPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create manifest watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that write via
	// rename would otherwise drop the watch after the first save.
	if err := watcher.Add(filepath.Dir(manifestPath)); err != nil {
		return fmt.Errorf("watch manifest directory: %w", err)
	}
	a.logger.Info("Watching manifest for changes.", "path", manifestPath)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch mode stopped.")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(manifestPath) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			a.logger.Info("Manifest changed, re-resolving.", "path", manifestPath)
			if err := a.resolveOnce(ctx, manifestPath); err != nil {
				a.logger.Error("Re-resolution failed, keeping previous lock.", "error", err)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Manifest watcher error.", "error", watchErr)
		}
	}
}
