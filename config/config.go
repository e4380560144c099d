package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/soocke/cropframe/domain/render"
	"github.com/soocke/cropframe/domain/selection"
)

// Config holds runtime configuration for the selection tool.
// Fields may be loaded from a JSON file and overridden by environment variables and flags.
type Config struct {
	Debug bool `json:"debug"`

	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Background   string `json:"background"` // "embedded", "screen", "file:<path>"

	// Adjuster parameters
	MaxSide  int     `json:"max_side"`
	MinRatio float64 `json:"min_ratio"`
	MaxRatio float64 `json:"max_ratio"`
	Grid     int     `json:"grid"`
	Policy   string  `json:"policy"` // "clamp-to-ratio" or "snap-to-bound"

	// Rendering
	Tint      bool   `json:"tint"`
	TintColor string `json:"tint_color"` // #RRGGBB or #RRGGBBAA
	FitAnchor string `json:"fit_anchor"` // "center" or "smart"

	ExportDir string `json:"export_dir"`

	// Last completed selection
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

const (
	AnchorCenter = "center"
	AnchorSmart  = "smart"
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		WindowWidth:  1280,
		WindowHeight: 800,
		Background:   "embedded",
		MaxSide:      selection.DefaultMaxSide,
		MinRatio:     selection.DefaultMinRatio,
		MaxRatio:     selection.DefaultMaxRatio,
		Grid:         selection.DefaultGrid,
		Policy:       selection.PolicyClampToRatio.String(),
		Tint:         false,
		TintColor:    "#00000060",
		FitAnchor:    AnchorCenter,
		ExportDir:    ".",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.WindowWidth < 200 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight < 150 {
		c.WindowHeight = def.WindowHeight
	}
	if strings.TrimSpace(c.Background) == "" {
		c.Background = def.Background
	}
	s := c.AdjusterSettings()
	c.MaxSide, c.Grid = s.MaxSide, s.Grid
	c.MinRatio, c.MaxRatio = s.MinRatio, s.MaxRatio
	var err error
	if _, perr := selection.ParsePolicy(c.Policy); perr != nil {
		err = perr
	}
	c.Policy = s.Policy.String()
	if _, cerr := ParseHexColor(c.TintColor); cerr != nil {
		c.TintColor = def.TintColor
		if err == nil {
			err = cerr
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.FitAnchor)) {
	case AnchorSmart:
		c.FitAnchor = AnchorSmart
	default:
		c.FitAnchor = AnchorCenter
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		c.ExportDir = def.ExportDir
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	return err
}

// AdjusterSettings converts the adjuster fields to normalized selection settings.
func (c *Config) AdjusterSettings() selection.Settings {
	policy, _ := selection.ParsePolicy(c.Policy)
	return selection.Settings{
		MaxSide:  c.MaxSide,
		MinRatio: c.MinRatio,
		MaxRatio: c.MaxRatio,
		Grid:     c.Grid,
		Policy:   policy,
	}.Normalize()
}

// TintRGBA returns the parsed tint colour, falling back to the default.
func (c *Config) TintRGBA() color.NRGBA {
	if col, err := ParseHexColor(c.TintColor); err == nil {
		return col
	}
	col, _ := ParseHexColor(DefaultConfig().TintColor)
	return col
}

// ParseHexColor parses #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ReadFile decodes the JSON file at path over DefaultConfig without
// environment overrides. A missing file yields the defaults; on a decode
// error the defaults are returned together with the error.
func ReadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decoding %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Load reads the config file at path (see ReadFile) and applies environment
// overrides (see ApplyEnv). Overrides are applied even when reading failed,
// in which case the error is returned alongside the defaults.
func Load(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	cfg.ApplyEnv()
	_ = cfg.Validate()
	return cfg, err
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Environment variable names recognised by ApplyEnv.
const (
	EnvBackground = "CROPFRAME_BACKGROUND"
	EnvPolicy     = "CROPFRAME_POLICY"
	EnvDebug      = "CROPFRAME_DEBUG"
	EnvExportDir  = "CROPFRAME_EXPORT_DIR"
	EnvFitAnchor  = "CROPFRAME_FIT_ANCHOR"
)

// ApplyEnv loads a .env file if present and overrides fields from the environment.
func (c *Config) ApplyEnv() {
	// a missing .env file is fine
	_ = godotenv.Load()

	if v := os.Getenv(EnvBackground); v != "" {
		c.Background = v
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		c.Policy = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv(EnvFitAnchor); v != "" {
		c.FitAnchor = v
	}
}

// RenderOptions returns the renderer settings held by c.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Tint:        c.Tint,
		TintColor:   c.TintRGBA(),
		SmartAnchor: c.FitAnchor == AnchorSmart,
	}
}
