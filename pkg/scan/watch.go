package scan

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	watchTick   = 250 * time.Millisecond
	watchSettle = 300 * time.Millisecond
)

// watch keeps the run open after the initial pass: screenshots dropped into
// the images directory are debounced until their create events settle, then
// fed through the same per-image pipeline and appended to the open output
// file in arrival order. Returns when ctx is cancelled.
func (r *Runner) watch(ctx context.Context, w *Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(r.ImagesDir); err != nil {
		return fmt.Errorf("watch %s: %w", r.ImagesDir, err)
	}
	log.Printf("Watching %s (debounced) ...", r.ImagesDir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, seen := range pending {
				if now.Sub(seen) > watchSettle { // stable
					delete(pending, name)
					if err := w.Write(name, r.processOne(name)); err != nil {
						return fmt.Errorf("row for %s: %w", name, err)
					}
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
