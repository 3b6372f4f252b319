// Package watch re-runs a callback whenever one of a set of source files
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DefaultDebounce = 50 * time.Millisecond

// Func is called with the path of the last file that changed.
type Func func(ctx context.Context, changed string) error

type Watcher struct {
	// Debounce coalesces bursts of events into one call.
	Debounce time.Duration

	w     *fsnotify.Watcher
	dirs  map[string]bool
	files map[string]bool
}

func New() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		Debounce: DefaultDebounce,
		w:        w,
		dirs:     map[string]bool{},
		files:    map[string]bool{},
	}, nil
}

// Add starts watching paths. The parent directory is watched so that
// editors which save by renaming over the file are still noticed.
func (w *Watcher) Add(paths ...string) error {
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Watching reports whether path was added.
func (w *Watcher) Watching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *Watcher) Close() error {
	return w.w.Close()
}

// Run blocks until ctx is done. Errors returned by fn are logged and do not
// stop the loop.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	logger := zerolog.Ctx(ctx)

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var changed string
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !w.files[ev.Name] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("file changed")
			changed = ev.Name
			timer.Reset(w.Debounce)

		case <-timer.C:
			if err := fn(ctx, changed); err != nil {
				logger.Error().Err(err).Str("path", changed).Msg("check failed")
			}

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}
