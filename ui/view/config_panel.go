package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/cropframe/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the adjuster form widgets and apply logic.
// It owns its widgets and persists edits through a config.Store on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	Refresh()                                             // reloads widget text from the config
	ApplyChanges()                                        // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg       *config.Config
	store     *config.Store
	logger    *slog.Logger
	onApplied func(*config.Config)
	applyBtn  *ButtonWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApplied runs after a successful apply.
func NewConfigPanel(cfg *config.Config, store *config.Store, logger *slog.Logger, onApplied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, store: store, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

// fields lists the editable values in display order.
func (v *configPanel) fields() [][3]string {
	c := v.cfg
	return [][3]string{
		{"maxSide", "Max Side", fmt.Sprintf("%d", c.MaxSide)},
		{"minRatio", "Min Ratio", fmt.Sprintf("%.4f", c.MinRatio)},
		{"maxRatio", "Max Ratio", fmt.Sprintf("%.4f", c.MaxRatio)},
		{"grid", "Grid", fmt.Sprintf("%d", c.Grid)},
		{"tintColor", "Tint Colour (#RRGGBBAA)", c.TintColor},
		{"exportDir", "Export Dir", c.ExportDir},
	}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	for _, f := range v.fields() {
		lbl := Label(Txt(f[1]), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.widgets[f[0]] = w
		row++
	}
	v.Refresh()
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) Refresh() {
	if v.cfg == nil {
		return
	}
	for _, f := range v.fields() {
		if w := v.widgets[f[0]]; w != nil {
			w.Delete("1.0", END)
			w.Insert("1.0", f[2])
		}
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		if f, ok := parseFloatField(v.text(v.widgets[id])); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		if i, ok := parseIntField(v.text(v.widgets[id])); ok {
			*dst = i
		}
	}
	assignString := func(id string, dst *string) {
		if s := strings.TrimSpace(v.text(v.widgets[id])); s != "" {
			*dst = s
		}
	}
	assignInt("maxSide", &cfg.MaxSide)
	assignFloat("minRatio", &cfg.MinRatio)
	assignFloat("maxRatio", &cfg.MaxRatio)
	assignInt("grid", &cfg.Grid)
	assignString("tintColor", &cfg.TintColor)
	assignString("exportDir", &cfg.ExportDir)
	if verr := cfg.Validate(); verr != nil && v.logger != nil {
		v.logger.Warn("config values normalized", "error", verr)
	}
	patch := func(c *config.Config) {
		c.MaxSide, c.Grid = cfg.MaxSide, cfg.Grid
		c.MinRatio, c.MaxRatio = cfg.MinRatio, cfg.MaxRatio
		c.TintColor = cfg.TintColor
		c.ExportDir = cfg.ExportDir
	}
	var err error
	if v.store != nil {
		err = v.store.Update(patch)
	} else {
		patch(v.cfg)
	}
	v.Refresh()
	if err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved")
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
