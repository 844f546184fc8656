package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the configuration when its YAML file changes and hands the
// result to registered listeners.
type Watcher struct {
	path      string
	overrides *ConfigOverrides
	watcher   *fsnotify.Watcher
	logger    *zap.Logger
	debounce  time.Duration

	mu        sync.RWMutex
	current   *Config
	listeners []func(*Config)

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher watches the file that produced current. The same overrides are
// re-applied on every reload so flags keep winning.
func NewWatcher(path string, current *Config, overrides *ConfigOverrides, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Editors save by rename, so watch the directory rather than the file.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:      path,
		overrides: overrides,
		watcher:   fw,
		logger:    logger,
		debounce:  100 * time.Millisecond,
		current:   current,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// OnChange registers a listener for successfully reloaded configurations.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.loop()
	w.logger.Info("configuration watcher started", zap.String("path", w.path))
}

// Stop ends watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		<-w.doneCh
	})
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
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
			w.logger.Error("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	overrides := ConfigOverrides{}
	if w.overrides != nil {
		overrides = *w.overrides
	}
	path := w.path
	overrides.ConfigFile = &path

	cfg, err := NewLoader().LoadWithOverrides(&overrides)
	if err != nil {
		w.logger.Error("invalid configuration, keeping current", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	listeners := append([]func(*Config){}, w.listeners...)
	w.mu.Unlock()

	w.logger.Info("configuration reloaded",
		zap.String("path", w.path),
		zap.Duration("poll_interval", cfg.Web.PollInterval),
	)
	for _, fn := range listeners {
		fn(cfg)
	}
}
