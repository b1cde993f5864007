package index

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-pkgz/lgr"
)

// DefaultDebounce is the quiet period after the last change before a rebuild starts
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls Build after markdown files in Dir change, until the context is canceled.
// Bursts of events within Debounce trigger a single build.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Build    func(ctx context.Context) error
}

// Run watches the directory and blocks until ctx is done. Build errors are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Dir, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	lgr.Printf("[INFO] watching %s for changes", w.Dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			lgr.Printf("[INFO] watcher stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			lgr.Printf("[DEBUG] change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			lgr.Printf("[INFO] rebuilding")
			if err := w.Build(ctx); err != nil {
				lgr.Printf("[WARN] rebuild failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lgr.Printf("[WARN] file watcher error: %v", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".md" {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
