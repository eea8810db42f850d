package reload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the configuration file and local manifest files and
// feeds change events into a Scheduler. Debouncing happens in the
// Scheduler, so every relevant filesystem event simply calls Schedule.
type Watcher struct {
	watcher   *fsnotify.Watcher
	scheduler *Scheduler
	logger    *slog.Logger

	mu      sync.Mutex
	watched map[string]struct{}
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher over the given paths. The containing
// directory of each path is watched, so a tracked file that is replaced
// by rename (the usual atomic-save pattern) still produces events. Paths
// whose directory does not exist are skipped with a warning.
func NewWatcher(paths []string, scheduler *Scheduler, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:   fsw,
		scheduler: scheduler,
		logger:    logger.With("component", "reload.watcher"),
		watched:   make(map[string]struct{}),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}

	for _, p := range paths {
		if err := w.addPath(p); err != nil {
			w.watcher.Close()
			return nil, err
		}
	}

	return w, nil
}

// addPath registers a file for change notifications. fsnotify delivers
// events per directory, so the containing directory is watched and events
// are filtered against the tracked file set.
func (w *Watcher) addPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path %q: %w", path, err)
	}
	w.watched[abs] = struct{}{}

	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		// The containing directory may not exist yet. Skip it rather than
		// failing startup; a reload picks the file up once it appears.
		w.logger.Warn("cannot watch directory, skipping", "dir", dir, "error", err)
		return nil
	}
	w.logger.Debug("watching file", "path", abs)
	return nil
}

// Watch processes filesystem events until the context is cancelled or Stop
// is called. This is a blocking operation.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	w.logger.Info("file watcher started", "files", len(w.watched))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped", "cause", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())
			w.scheduler.Schedule("file changed: " + filepath.Base(event.Name))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// shouldProcessEvent keeps only write-class events for tracked files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.watched[abs]
	return ok
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
