// Package watch re-runs an action when CSV exports land in a folder.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Run calls fn once, then again after each quiet period of debounce
// following a burst of .csv create or write events in dir. It returns when
// ctx is cancelled.
func Run(ctx context.Context, dir string, debounce time.Duration, log *slog.Logger, fn func()) error {
	if log == nil {
		log = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("watch: watching for exports", "dir", dir)

	fn()

	// fire is nil while no burst is pending.
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			log.Debug("watch: change", "file", event.Name, "op", event.Op.String())
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch: watcher error", "err", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Ext(ev.Name) == ".csv"
}
