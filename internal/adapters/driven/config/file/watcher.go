package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Watcher reloads a ConfigStore when its file changes on disk and invokes
// the registered callback after each successful reload.
type Watcher struct {
	store  *ConfigStore
	logger driven.Logger
	onLoad func()
}

// NewWatcher creates a watcher for the store. onLoad may be nil.
func NewWatcher(store *ConfigStore, logger driven.Logger, onLoad func()) *Watcher {
	return &Watcher{store: store, logger: logger, onLoad: onLoad}
}

// Watch blocks until ctx is cancelled, reloading the store on every write
// to its file. Editors often replace the file atomically, so the watch is
// on the directory and events are filtered by name.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Name != w.store.Path() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Load(); err != nil {
				if w.logger != nil {
					w.logger.Warn("reloading config: %v", err)
				}
				continue
			}
			if w.logger != nil {
				w.logger.Debug("config reloaded from %s", w.store.Path())
			}
			if w.onLoad != nil {
				w.onLoad()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("config watcher: %v", err)
			}
		}
	}
}
