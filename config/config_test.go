package config

import (
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soocke/cropframe/domain/selection"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Equal(t, selection.DefaultMaxSide, cfg.MaxSide)
	require.Equal(t, "clamp-to-ratio", cfg.Policy)
	require.False(t, cfg.Tint)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Policy = "snap"
	cfg.Tint = true
	cfg.SelectionX, cfg.SelectionY, cfg.SelectionW, cfg.SelectionH = 10, 20, 300, 200
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "snap-to-bound", got.Policy)
	require.True(t, got.Tint)
	require.Equal(t, 300, got.SelectionW)
	require.Equal(t, selection.PolicySnapToBound, got.AdjusterSettings().Policy)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, DefaultConfig().Grid, cfg.Grid)
}

func TestValidate_NormalizesValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowWidth = 10
	cfg.Grid = 0
	cfg.MinRatio, cfg.MaxRatio = 3, 0.5
	cfg.Policy = "sideways"
	cfg.TintColor = "purple"
	cfg.FitAnchor = "SMART"

	err := cfg.Validate()
	require.Error(t, err)
	require.Equal(t, 1280, cfg.WindowWidth)
	require.Equal(t, selection.DefaultGrid, cfg.Grid)
	require.Equal(t, 0.5, cfg.MinRatio)
	require.Equal(t, 3.0, cfg.MaxRatio)
	require.Equal(t, "clamp-to-ratio", cfg.Policy)
	require.Equal(t, DefaultConfig().TintColor, cfg.TintColor)
	require.Equal(t, AnchorSmart, cfg.FitAnchor)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff800040")
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0x40}, c)

	c, err = ParseHexColor("102030")
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	_, err = ParseHexColor("#12")
	require.Error(t, err)
	_, err = ParseHexColor("#gggggg")
	require.Error(t, err)
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv(EnvPolicy, "snap-to-bound")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvBackground, "screen")
	t.Setenv(EnvExportDir, "/tmp/crops")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	require.Equal(t, "snap-to-bound", cfg.Policy)
	require.True(t, cfg.Debug)
	require.Equal(t, "screen", cfg.Background)
	require.Equal(t, "/tmp/crops", cfg.ExportDir)
}

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, DefaultConfig().Save(path))

	var latest atomic.Pointer[Config]
	w, err := Watch(path, nil, func(cfg *Config, err error) {
		if err == nil {
			latest.Store(cfg)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	cfg := DefaultConfig()
	cfg.Grid = 16
	require.NoError(t, cfg.Save(path))

	require.Eventually(t, func() bool {
		c := latest.Load()
		return c != nil && c.Grid == 16
	}, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatch_NilCallback(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "c.json"), nil, nil)
	require.Error(t, err)
}

func TestLoad_BadJSONKeepsEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	t.Setenv(EnvPolicy, "snap-to-bound")

	cfg, err := Load(path)
	require.Error(t, err)
	require.Equal(t, "snap-to-bound", cfg.Policy)
}

func TestReadFile_IgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, DefaultConfig().Save(path))
	t.Setenv(EnvBackground, "screen")

	cfg, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "embedded", cfg.Background)
}
