package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay batches the burst of events a single save produces
// (temp file, rename, sqlite journal).
const DefaultWatchDelay = 300 * time.Millisecond

// Watch blocks until ctx is done, calling onChange after writes under dir
// settle for delay. onChange runs on the caller's goroutine.
func Watch(ctx context.Context, dir string, delay time.Duration, onChange func()) error {
	if delay <= 0 {
		delay = DefaultWatchDelay
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(delay)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("profile watch error", "dir", dir, "error", err)

		case <-timer.C:
			pending = false
			onChange()

		case <-ctx.Done():
			return nil
		}
	}
}
