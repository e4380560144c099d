package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/cropframe/domain/selection"
)

func TestStore_PersistsSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	s := NewStore(cfg, path)

	_, ok := cfg.SavedSelection()
	require.False(t, ok)

	require.NoError(t, s.SaveSelection(selection.Rect{X: 10.4, Y: 20.6, Width: 300, Height: 200}))
	require.NoError(t, s.SaveTint(true))
	require.NoError(t, s.SavePolicy(selection.PolicySnapToBound))

	got, err := Load(path)
	require.NoError(t, err)
	r, ok := got.SavedSelection()
	require.True(t, ok)
	require.Equal(t, selection.Rect{X: 10, Y: 21, Width: 300, Height: 200}, r)
	require.True(t, got.Tint)
	require.Equal(t, "snap-to-bound", got.Policy)
}

func TestStore_ReplaceKeepsPointer(t *testing.T) {
	cfg := DefaultConfig()
	s := NewStore(cfg, "")
	next := DefaultConfig()
	next.Grid = 8
	s.Replace(next)
	require.Equal(t, 8, cfg.Grid)
	require.NoError(t, s.SaveTint(true)) // no path: memory only
	require.True(t, cfg.Tint)
}

func TestStore_OverridesStayOffDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv(EnvExportDir, "/tmp/env-crops")
	cfg, err := Load(path)
	require.NoError(t, err)
	BackgroundOverride("file:/tmp/one-off.png")(cfg)
	s := NewStore(cfg, path)

	require.NoError(t, s.SaveSelection(selection.Rect{X: 1, Y: 2, Width: 30, Height: 40}))
	require.NoError(t, s.SaveTint(true))

	onDisk, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "embedded", onDisk.Background)
	require.Equal(t, ".", onDisk.ExportDir)
	require.Equal(t, 30, onDisk.SelectionW)
	require.True(t, onDisk.Tint)

	// memory keeps the overrides alongside the new values
	require.Equal(t, "file:/tmp/one-off.png", cfg.Background)
	require.Equal(t, "/tmp/env-crops", cfg.ExportDir)
	require.Equal(t, 30, cfg.SelectionW)
}

func TestStore_ReplaceReappliesOverrides(t *testing.T) {
	cfg := DefaultConfig()
	s := NewStore(cfg, "", BackgroundOverride("screen"), BackgroundOverride(""))
	next := DefaultConfig()
	next.Grid = 16
	s.Replace(next)
	require.Equal(t, "screen", cfg.Background)
	require.Equal(t, 16, cfg.Grid)
}

func TestStore_UnreadableFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	s := NewStore(DefaultConfig(), path)
	require.Error(t, s.SaveTint(true))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{broken", string(raw))
}
