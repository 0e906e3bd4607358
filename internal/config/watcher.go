package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"appshell/internal/logger"
)

// Watcher reloads the store when its backing file changes on disk and
// notifies registered callbacks. Editors tend to fire several events per
// save, so changes are debounced.
type Watcher struct {
	mu        sync.Mutex
	store     *Store
	log       logger.Logger
	watcher   *fsnotify.Watcher
	callbacks []func(*Store)
	debounce  time.Duration
	stopCh    chan struct{}
	running   bool
}

// WatcherOption is a functional option for Watcher configuration.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce duration for file change events.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher for the store's backing file.
func NewWatcher(store *Store, log logger.Logger, opts ...WatcherOption) (*Watcher, error) {
	if log == nil {
		log = logger.Nop{}
	}

	fswatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		store:    store,
		log:      log,
		watcher:  fswatcher,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// OnReload registers a callback invoked after the store has been reloaded.
func (w *Watcher) OnReload(fn func(*Store)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher is already running")
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.store.Path()); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch config file %s: %w", w.store.Path(), err)
	}

	go w.loop()
	w.log.Info("ConfigWatcher", "watching config file", map[string]interface{}{
		"path": w.store.Path(),
	})
	return nil
}

func (w *Watcher) loop() {
	var timer *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("ConfigWatcher", err, nil)

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	// Saves made through the store itself also hit fsnotify; skip them so
	// persisting a setting does not loop back as a spurious reload.
	if data, err := os.ReadFile(w.store.Path()); err == nil && w.store.wrote(data) {
		w.log.Debug("ConfigWatcher", "ignoring own save", map[string]interface{}{
			"path": w.store.Path(),
		})
		return
	}

	if !w.store.Load() {
		return
	}

	w.mu.Lock()
	callbacks := make([]func(*Store), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(w.store)
	}
}

// Stop ends watching. Safe to call once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	w.watcher.Close()
}
