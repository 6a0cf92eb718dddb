package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/notedex/notedex-cli/internal/core/ports/driven"
	"github.com/notedex/notedex-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher reports create/write/remove events for matching files under a
// directory tree using fsnotify.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// NewWatcher creates a file watcher filtered to the given extensions.
func NewWatcher(extensions []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".md", ".txt"}
	}
	return &Watcher{watcher: fsw, extensions: extensions}, nil
}

// Watch registers dir and all its subdirectories and returns a channel of
// changed file paths. The channel is closed when ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	// fsnotify does not watch recursively; register every subdirectory.
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	changes := make(chan string, 100)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create != 0 {
					// New subdirectories need registering to keep the
					// recursive watch complete.
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						_ = w.watcher.Add(event.Name)
						continue
					}
				}
				if !w.matches(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- event.Name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// matches reports whether path has one of the watched extensions.
func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range w.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
