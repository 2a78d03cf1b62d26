// Package watch reports when wallpaper files change on disk.
//
// Wallpaper setters usually replace the file (write to a temp file, then
// rename) rather than editing it in place, so the watcher subscribes to each
// file's parent directory and filters events by name. Bursts of events for the
// same file are coalesced: the callback runs once the file has been quiet for
// the settle interval.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must be quiet before it is reported.
const DefaultSettle = 250 * time.Millisecond

// minTick bounds how often pending changes are checked.
const minTick = time.Millisecond

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw    *fsnotify.Watcher
	files  map[string]struct{}
	settle time.Duration

	closeOnce sync.Once
}

// New starts watching paths. Each path must live in an existing directory;
// the file itself may not exist yet.
func New(settle time.Duration, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		files:  make(map[string]struct{}),
		settle: settle,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange with the absolute path of
// each watched file after it changes and settles. onChange runs on the Run
// goroutine, one call at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(w.settle/2, minTick))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if _, watched := w.files[name]; watched {
				pending[name] = time.Now()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// Overflow or transient errors; the next event retriggers.
			log.Printf("watch error: %v", err)

		case now := <-ticker.C:
			for name, last := range pending {
				if now.Sub(last) >= w.settle {
					delete(pending, name)
					onChange(name)
				}
			}
		}
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.fsw.Close() })
	return err
}
