package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Watcher reports files created or modified under a connector's root.
// fsnotify watches single directories, so the whole tree is registered
// up front and directories created later are added when their create
// events arrive. Paths pass the same include, exclude and hidden-file
// filters that Fetch applies.
type Watcher struct {
	connector *Connector
	fsw       *fsnotify.Watcher
	root      string
}

// NewWatcher creates a watcher over the connector's directory tree.
func NewWatcher(c *Connector) (*Watcher, error) {
	root, err := filepath.Abs(c.rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		connector: c,
		fsw:       fsw,
		root:      root,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close() //nolint:errcheck // Best-effort cleanup on construction failure.
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	return w, nil
}

// Events streams absolute paths of files worth re-ingesting. The channel
// closes when ctx is cancelled or the watcher is closed. Watch errors
// are logged, not fatal; the stream keeps going.
func (w *Watcher) Events(ctx context.Context) <-chan string {
	paths := make(chan string)

	go func() {
		defer close(paths)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				path, relevant := w.handleFsEvent(event)
				if !relevant {
					continue
				}
				select {
				case paths <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)
			}
		}
	}()

	return paths
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// handleFsEvent maps one fsnotify event to a path worth re-ingesting.
// Directory creation extends the watch instead. Hidden names, removed
// or renamed paths, chmods, and files the connector's globs reject all
// return ok=false.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(filepath.Base(event.Name)) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if event.Op.Has(fsnotify.Create) {
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("Watching new directory %s failed: %v", event.Name, err)
			}
		}
		return "", false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || !w.connector.matches(rel) {
		return "", false
	}
	return event.Name, true
}

// addTree registers dir and every non-hidden subdirectory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && isHidden(entry.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
