// Package watcher keeps a resolver configuration in sync with a YAML file.
//
// A Watcher is an arhttp.ConfigSource: a Resolver built with it reads the
// latest valid configuration on every lookup, so edits to the file apply to
// the next resolution without a restart.
//
// Basic usage:
//
//	w, err := watcher.New().
//	    FromFile("arhttp.yaml").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
//	if _, err := w.Watch(); err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := arhttp.New().WithConfigSource(w).Build()
//
// A reload that fails to parse or validate is logged and ignored; the
// previous configuration stays in effect.
//
// # Thread Safety
//
// The Watcher is safe for concurrent use. The updates channel should be
// consumed by a single goroutine.
package watcher

import (
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/arhttp"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a configuration file and emits updates when it changes.
type Watcher struct {
	config      watcherConfig
	configPath  string
	current     atomic.Pointer[arhttp.Config]
	fsWatcher   *fsnotify.Watcher
	stopChan    chan struct{}
	doneChan    chan struct{}
	updatesChan chan arhttp.Config
	mu          sync.Mutex
	running     bool
}

// watcherConfig holds internal configuration for the watcher.
type watcherConfig struct {
	loadOpts         []arhttp.LoadOption
	debounceInterval time.Duration
	logger           *zap.Logger
}

// defaultDebounceInterval prevents rapid successive reloads.
const defaultDebounceInterval = 100 * time.Millisecond

// New creates a new watcher Builder.
func New() *Builder {
	return &Builder{
		config: watcherConfig{
			debounceInterval: defaultDebounceInterval,
		},
	}
}

// Config returns the latest valid configuration. It implements arhttp.ConfigSource.
func (w *Watcher) Config() arhttp.Config {
	return *w.current.Load()
}

// Watch starts watching the file. The returned channel receives every new
// configuration that differs from the previous one. It holds at most one
// pending value; an unread update is replaced by a newer one.
//
// The returned channel is closed when Stop() is called.
func (w *Watcher) Watch() (<-chan arhttp.Config, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil, &WatcherError{Message: "watcher is already running"}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &WatcherError{Message: "failed to create file watcher", Err: err}
	}

	// Watch the directory so editors that replace the file are still seen.
	if err := fsw.Add(filepath.Dir(w.configPath)); err != nil {
		_ = fsw.Close()
		return nil, &WatcherError{Message: "failed to watch " + w.configPath, Err: err}
	}

	w.fsWatcher = fsw
	w.running = true
	w.updatesChan = make(chan arhttp.Config, 1)
	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})

	go w.watchLoop()

	return w.updatesChan, nil
}

// Stop gracefully stops the watcher.
// It closes the updates channel and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	<-w.doneChan // Wait for watchLoop to finish

	_ = w.fsWatcher.Close()
}

// watchLoop is the main watch loop that monitors for changes.
func (w *Watcher) watchLoop() {
	defer close(w.doneChan)
	defer close(w.updatesChan)

	// Debounce timer to prevent rapid successive reloads
	var debounceTimer *time.Timer
	var debounceChan <-chan time.Time

	reload := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.NewTimer(w.config.debounceInterval)
		debounceChan = debounceTimer.C
	}

	fsChan := w.fsWatcher.Events
	errChan := w.fsWatcher.Errors

	for {
		select {
		case <-w.stopChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-fsChan:
			if !ok {
				fsChan = nil
				continue
			}
			if filepath.Clean(event.Name) != w.configPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reload()
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			w.config.logger.Warn("file watcher error", zap.String("path", w.configPath), zap.Error(err))

		case <-debounceChan:
			debounceChan = nil
			if cfg, changed := w.reloadIfChanged(); changed {
				w.publish(cfg)
			}
		}
	}
}

// reloadIfChanged reloads the configuration and returns true if it changed.
func (w *Watcher) reloadIfChanged() (arhttp.Config, bool) {
	cfg, err := arhttp.LoadConfig(w.config.loadOpts...)
	if err != nil {
		w.config.logger.Warn("ignoring invalid configuration",
			zap.String("path", w.configPath), zap.Error(err))
		return arhttp.Config{}, false
	}

	if reflect.DeepEqual(cfg, w.Config()) {
		return arhttp.Config{}, false
	}

	w.current.Store(&cfg)
	w.config.logger.Info("configuration reloaded",
		zap.String("path", w.configPath),
		zap.String("server_url", cfg.ServerURL),
		zap.String("path_format", cfg.PathFormat),
		zap.Bool("debug", cfg.Debug))

	return cfg, true
}

// publish sends cfg without blocking, replacing an unread older update.
func (w *Watcher) publish(cfg arhttp.Config) {
	for {
		select {
		case w.updatesChan <- cfg:
			return
		default:
		}

		select {
		case <-w.updatesChan:
		default:
		}
	}
}

// WatcherError represents a watcher-specific error.
type WatcherError struct {
	Message string
	Err     error
}

func (e *WatcherError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *WatcherError) Unwrap() error {
	return e.Err
}
