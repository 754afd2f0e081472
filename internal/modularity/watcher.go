package modularity

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"bootkit/pkg/logging"
)

// ReloadFunc receives a freshly loaded catalog.
type ReloadFunc func(*Catalog)

// Watcher reloads a catalog file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file on save are handled. Bursts of events are
// debounced into a single reload.
type Watcher struct {
	mu sync.Mutex

	path     string
	debounce time.Duration
	onReload ReloadFunc

	watcher *fsnotify.Watcher
	timer   *time.Timer
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the catalog at path. A zero debounce
// interval defaults to 250ms.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc) *Watcher {
	if debounce == 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onReload: onReload,
	}
}

// Start begins watching. It returns immediately; reloads are delivered on
// the watcher's goroutine until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}

	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.processEvents(ctx, fw, w.stopCh, w.doneCh)

	logging.Info("Modularity", "Watching module catalog %s for changes", w.path)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	done := w.doneCh
	fw := w.watcher
	w.mu.Unlock()

	<-done
	_ = fw.Close()
}

func (w *Watcher) processEvents(ctx context.Context, fw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logging.Error("Modularity", err, "Catalog watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	catalog, err := LoadCatalogFile(w.path)
	if err != nil {
		logging.Warn("Modularity", "Ignoring catalog change: %v", err)
		return
	}

	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running && w.onReload != nil {
		w.onReload(catalog)
	}
}
