// Package watch re-runs work when input files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = time.Second

// relevantOps are the operations that replace or rewrite a watched file.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename

// Watcher watches a fixed set of files. Parent directories are watched so
// that replaced files keep being tracked.
type Watcher struct {
	files    map[string]struct{}
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New creates a watcher for files. A non-positive debounce uses DefaultDebounce.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		fsw:      fsw,
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Relevant reports whether ev changes one of the watched files.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Run calls fn after each burst of changes until ctx is done. Calls never
// overlap. Errors from fn are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(ev) {
				continue
			}
			logger.Debug("watch: %s %s", ev.Op, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error(err, "watch run failed")
			}
		}
	}
}
