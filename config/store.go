package config

import (
	"fmt"
	"math"
	"sync"

	"github.com/soocke/cropframe/domain/selection"
)

// Override adjusts a loaded config for this run only, e.g. from a command
// line flag. Overrides never reach the config file.
type Override func(*Config)

// BackgroundOverride forces the background source. An empty src is a no-op.
func BackgroundOverride(src string) Override {
	return func(c *Config) {
		if src != "" {
			c.Background = src
		}
	}
}

// Store writes UI state (last selection, tint, policy, panel settings) back
// into the config file. Only the changed fields are written: the file is
// re-read and patched so that environment and flag overrides held in memory
// stay out of it. An empty path keeps changes in memory only.
type Store struct {
	mu        sync.Mutex
	cfg       *Config
	path      string
	overrides []Override
}

// NewStore binds cfg to path. overrides are re-applied on Replace.
func NewStore(cfg *Config, path string, overrides ...Override) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Store{cfg: cfg, path: path, overrides: overrides}
}

// Update applies patch to the in-memory config and to the file on disk.
func (s *Store) Update(patch func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch(s.cfg)
	if s.path == "" {
		return nil
	}
	onDisk, err := ReadFile(s.path)
	if err != nil {
		// keep a file we cannot parse untouched
		return fmt.Errorf("config store: %w", err)
	}
	patch(onDisk)
	return onDisk.Save(s.path)
}

// SaveSelection records r as the last selection and writes the config.
func (s *Store) SaveSelection(r selection.Rect) error {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	w, h := int(math.Round(r.Width)), int(math.Round(r.Height))
	return s.Update(func(c *Config) {
		c.SelectionX, c.SelectionY = x, y
		c.SelectionW, c.SelectionH = w, h
	})
}

// SaveTint records the tint toggle.
func (s *Store) SaveTint(on bool) error {
	return s.Update(func(c *Config) { c.Tint = on })
}

// SavePolicy records the adjuster policy.
func (s *Store) SavePolicy(p selection.Policy) error {
	return s.Update(func(c *Config) { c.Policy = p.String() })
}

// Replace swaps in a reloaded config, keeping the pointer held by views.
// The store's overrides are applied to next first.
func (s *Store) Replace(next *Config) {
	if next == nil {
		return
	}
	for _, o := range s.overrides {
		o(next)
	}
	s.mu.Lock()
	*s.cfg = *next
	s.mu.Unlock()
}

// SavedSelection returns the persisted selection, if any.
func (c *Config) SavedSelection() (selection.Rect, bool) {
	if c == nil || c.SelectionW <= 0 || c.SelectionH <= 0 {
		return selection.Rect{}, false
	}
	return selection.Rect{
		X:      float64(c.SelectionX),
		Y:      float64(c.SelectionY),
		Width:  float64(c.SelectionW),
		Height: float64(c.SelectionH),
	}, true
}
