// Package watch signals changes to a catalog file.
//
// The parent directory is watched rather than the file itself, so
// editors and tools that replace the file through a rename are still
// seen. Bursts of events are debounced into a single notification.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 500 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.CatalogWatcher = (*Watcher)(nil)

// Watcher reports settled changes to one file.
type Watcher struct {
	path      string
	debounce  time.Duration
	fs        *fsnotify.Watcher
	closeOnce sync.Once
}

// New starts watching path. A debounce of zero uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, fs: fw}, nil
}

// Watch blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	log := logger.With("watch")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("catalog event")
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("file", w.path).Msg("watch error")

		case <-timer.C:
			log.Info().Str("file", w.path).Msg("catalog changed")
			onChange()
		}
	}
}

// relevant reports whether the event touches the watched file, or the
// write-ahead log of an SQLite catalog, in a way that changes content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if name != w.path && name != w.path+"-wal" {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fs.Close()
	})
	return err
}
