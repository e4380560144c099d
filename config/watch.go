package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is the debounce window applied to config file events.
const DefaultReloadDelay = 250 * time.Millisecond

// Debouncer coalesces rapid events into a single callback invocation.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
}

// NewDebouncer returns a debouncer; zero duration selects DefaultReloadDelay.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultReloadDelay
	}
	return &Debouncer{duration: d}
}

// Trigger schedules fn after the debounce window, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		latest := seq == d.seq
		if latest {
			d.timer = nil
		}
		d.mu.Unlock()
		if latest {
			fn()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ReloadFunc receives the freshly loaded config or the load error.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	logger   *slog.Logger
	onReload ReloadFunc
	fs       *fsnotify.Watcher
	debounce *Debouncer
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// Watch starts watching path. The parent directory is watched so that
// editors replacing the file via rename are picked up.
func Watch(path string, logger *slog.Logger, onReload ReloadFunc) (*Watcher, error) {
	if onReload == nil {
		return nil, fmt.Errorf("config watch: nil reload callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		logger:   logger,
		onReload: onReload,
		fs:       fw,
		debounce: NewDebouncer(DefaultReloadDelay),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.debounce.Trigger(w.reload)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("config watch error", "error", err)
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if w.logger != nil {
		if err != nil {
			w.logger.Warn("config reload failed", "path", w.path, "error", err)
		} else {
			w.logger.Info("config reloaded", "path", w.path)
		}
	}
	w.onReload(cfg, err)
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.done)
		w.debounce.Cancel()
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
