package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"pomodoro/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

// WatchSettings reloads the settings file whenever it is written or replaced
// and passes changed values to onChange. Watching stops when ctx is done.
func WatchSettings(ctx context.Context, path string, current preferences.Settings, onChange func(preferences.Settings)) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Watch the directory: SaveSettings replaces the file by rename.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		last := current
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				settings, err := LoadSettings(path)
				if err != nil {
					log.Printf("settings watcher: %v", err)
					continue
				}
				if settings == last {
					continue
				}
				last = settings
				onChange(settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("settings watcher: %v", err)
			}
		}
	}()

	return nil
}
