package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/soocke/cropframe/config"
	"github.com/soocke/cropframe/domain/selection"
	"github.com/soocke/cropframe/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards.
type Handlers struct {
	Pointer        PointerHandler
	OnPolicy       func(selection.Policy)
	OnToggleTint   func()
	OnExport       func()
	OnExit         func()
	OnConfigChange func(cfg *config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	store  *config.Store
	logger *slog.Logger

	// Subviews
	Frame       FrameView
	ConfigPanel ConfigPanel

	// Widgets
	InfoLabel    *TLabelWidget
	StatusLabel  *TLabelWidget
	PolicySelect *TComboboxWidget
	TintButton   *TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	UpdateFrame(img image.Image)
	ShowInfo(text string)
	HideInfo()
	SetStatus(text string)
	SetTintButton(on bool)
	SetPolicy(p selection.Policy)
	FrameSize() (w, h int)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, store *config.Store, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, store: store, logger: logger}
}

const sidePanelWidth = 280

// Build constructs the layout: toolbar on row 0, the frame below it and the
// config panel in the right-hand column.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))

	policies := selection.Policies()
	names := make([]string, len(policies))
	current := 0
	for i, p := range policies {
		names[i] = p.String()
		if p.String() == rv.cfg.Policy {
			current = i
		}
	}
	rv.PolicySelect = TCombobox(Values(names), Width(16), State("readonly"))
	Grid(rv.PolicySelect, In(bar), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.PolicySelect.Current(current)
	Bind(rv.PolicySelect, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(rv.PolicySelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(policies) {
			if rv.logger != nil {
				rv.logger.Error("policy selection parse error", "error", err)
			}
			return
		}
		if h.OnPolicy != nil {
			h.OnPolicy(policies[idx])
		}
	}))

	rv.TintButton = TButton(Txt(tintText(rv.cfg.Tint)), Command(orNop(h.OnToggleTint)))
	Grid(rv.TintButton, In(bar), Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	exportBtn := TButton(Txt("Save Crop"), Style(theme.StylePrimaryButton), Command(orNop(h.OnExport)))
	Grid(exportBtn, In(bar), Row(0), Column(2), Sticky("w"), Padx("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(orNop(h.OnExit)))
	Grid(exitBtn, In(bar), Row(0), Column(3), Sticky("w"), Padx("0.2m"))

	rv.InfoLabel = TLabel(Txt(""), Style(theme.StyleInfoLabel))
	Grid(rv.InfoLabel, In(bar), Row(0), Column(4), Sticky("we"), Padx("0.6m"))
	rv.StatusLabel = TLabel(Txt("Loading background..."), Style(theme.StyleStatusLabel))
	Grid(rv.StatusLabel, In(bar), Row(0), Column(5), Sticky("e"), Padx("0.6m"))

	w := rv.cfg.WindowWidth - sidePanelWidth
	fh := rv.cfg.WindowHeight - 60
	rv.Frame = NewFrameView(1, 1, w, fh, h.Pointer)

	side := Frame()
	Grid(side, Row(1), Column(1), Sticky("nw"), Padx("0.3m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.store, rv.logger, h.OnConfigChange)
	rv.ConfigPanel.Build(side, 0)
}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}

func tintText(on bool) string {
	if on {
		return "Tint: on"
	}
	return "Tint: off"
}

// UpdateFrame proxies to the frame view.
func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.Frame != nil {
		rv.Frame.UpdateFrame(img)
	}
}

// FrameSize reports the drawing area in pixels.
func (rv *RootView) FrameSize() (int, int) {
	if rv == nil || rv.Frame == nil {
		return 0, 0
	}
	return rv.Frame.Size()
}

// ShowInfo displays the selection label.
func (rv *RootView) ShowInfo(text string) {
	if rv != nil && rv.InfoLabel != nil {
		rv.InfoLabel.Configure(Txt(text))
	}
}

// HideInfo clears the selection label.
func (rv *RootView) HideInfo() { rv.ShowInfo("") }

// SetStatus updates the status text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetTintButton reflects the tint state.
func (rv *RootView) SetTintButton(on bool) {
	if rv != nil && rv.TintButton != nil {
		rv.TintButton.Configure(Txt(tintText(on)))
	}
}

// SetPolicy selects p in the combobox, e.g. after a config reload.
func (rv *RootView) SetPolicy(p selection.Policy) {
	if rv == nil || rv.PolicySelect == nil {
		return
	}
	for i, q := range selection.Policies() {
		if q == p {
			rv.PolicySelect.Current(i)
			return
		}
	}
}
