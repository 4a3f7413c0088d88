package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of filesystem events an editor save
// produces into a single reload signal.
const reloadDebounce = 500 * time.Millisecond

// WatchConfig watches the given config files and returns a channel that
// emits once per debounced change. Watches are placed on each file's parent
// directory so atomic-rename saves (vim, VS Code) keep triggering after the
// original inode is gone. The watcher goroutine stops when ctx is canceled.
func WatchConfig(ctx context.Context, files ...string) <-chan struct{} {
	reloadCh := make(chan struct{}, 1) // Buffer 1 so we don't block sender

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create fsnotify watcher", "error", err)
		return reloadCh
	}

	watched := make(map[string]bool, len(files))
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			slog.Warn("Could not resolve absolute path for watch file", "file", file)
			continue
		}
		if err := watcher.Add(filepath.Dir(absPath)); err != nil {
			slog.Warn("Could not watch config directory", "file", file, "error", err)
			continue
		}
		watched[filepath.Base(absPath)] = true
		slog.Debug("Watching configuration file", "file", file)
	}

	go runWatchLoop(ctx, watcher, watched, reloadCh)

	return reloadCh
}

func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, reloadCh chan<- struct{}) {
	defer watcher.Close()
	defer close(reloadCh)

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[filepath.Base(event.Name)] {
				continue // Unrelated file in the same directory
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				slog.Info("Configuration change detected", "file", event.Name)
				select {
				case reloadCh <- struct{}{}:
				default: // A reload is already pending
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher encountered an error", "error", err)
		}
	}
}
