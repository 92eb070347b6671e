package tui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/fakeyudi/pathwise/internal/logging"
)

// Watch sends on changes whenever a data file in dir is written, created,
// renamed or removed, until ctx is cancelled. Sends never block: a pending
// notification already covers later events. Temp files and the log file
// are ignored.
func Watch(ctx context.Context, dir string, changes chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				select {
				case changes <- struct{}{}:
				default:
				}
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func ignored(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".tmp") || name == logging.FileName
}
