// ABOUTME: Polling watcher that reports settings and keymap files whose mtime changed
// ABOUTME: Runs until its context is cancelled; Check can be called directly

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is how often Run polls.
const DefaultWatchInterval = 2 * time.Second

// Watcher detects changes to a fixed set of files by comparing mtimes.
// A file that appears, disappears or is rewritten counts as changed.
type Watcher struct {
	paths    []string
	interval time.Duration

	mu     sync.Mutex
	mtimes map[string]time.Time
}

// NewWatcher snapshots the current state of paths.
func NewWatcher(paths []string) *Watcher {
	w := &Watcher{
		paths:    paths,
		interval: DefaultWatchInterval,
		mtimes:   make(map[string]time.Time, len(paths)),
	}
	w.snapshotLocked()
	return w
}

// SetInterval overrides the polling interval. Must be called before Run.
func (w *Watcher) SetInterval(d time.Duration) {
	w.interval = d
}

// Check returns the paths that changed since the previous call and
// records their new state.
func (w *Watcher) Check() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, path := range w.paths {
		prev, existed := w.mtimes[path]
		info, err := os.Stat(path)
		switch {
		case err != nil && existed:
			delete(w.mtimes, path)
			changed = append(changed, path)
		case err != nil:
		case !existed || !info.ModTime().Equal(prev):
			w.mtimes[path] = info.ModTime()
			changed = append(changed, path)
		}
	}
	return changed
}

// Run polls until ctx is done, calling onChange from its own goroutine
// with each non-empty batch of changed paths.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changed := w.Check(); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
