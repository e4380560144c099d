package presenter

import (
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/cropframe/config"
	"github.com/soocke/cropframe/domain/render"
	"github.com/soocke/cropframe/domain/selection"
	"github.com/soocke/cropframe/ui/images"
	"github.com/soocke/cropframe/ui/model"
)

// BackgroundSource exposes the loaded background image.
type BackgroundSource interface {
	Ready() bool
	Image() image.Image
	Size() selection.Size
}

// SelectionView receives rendered frames and label updates.
type SelectionView interface {
	UpdateFrame(img image.Image)
	ShowInfo(text string)
	HideInfo()
	SetStatus(text string)
}

// SelectionStore persists the last completed selection.
type SelectionStore interface {
	SaveSelection(r selection.Rect) error
}

// FrameSurface is a render surface whose pixels can be handed to the view.
type FrameSurface interface {
	render.Surface
	Image() image.Image
}

// ErrNoSelection is returned by ExportCrop before any selection completed.
var ErrNoSelection = errors.New("no selection to export")

// ErrNotReady is returned when the background has not finished loading.
var ErrNotReady = errors.New("background not ready")

// SelectionPresenter routes pointer events through the drag machine, adjusts
// finished rectangles and renders the result. All methods must be called on
// the UI thread.
type SelectionPresenter struct {
	model      *model.SelectionModel
	stats      *model.StatsModel
	adjuster   *selection.Adjuster
	renderer   *render.Renderer
	background BackgroundSource
	view       SelectionView
	store      SelectionStore
	logger     *slog.Logger

	// NewSurface allocates the frame surface on Resize.
	NewSurface func(w, h int) FrameSurface
	now        func() time.Time
	surface    FrameSurface
}

// NewSelectionPresenter wires the presenter. store and logger may be nil.
func NewSelectionPresenter(m *model.SelectionModel, stats *model.StatsModel, adj *selection.Adjuster, rnd *render.Renderer, bg BackgroundSource, view SelectionView, store SelectionStore, logger *slog.Logger) *SelectionPresenter {
	if m == nil {
		m = model.NewSelectionModel()
	}
	if stats == nil {
		stats = model.NewStatsModel()
	}
	if rnd == nil {
		rnd = render.NewRenderer(render.DefaultStyle(), nil)
	}
	return &SelectionPresenter{
		model:      m,
		stats:      stats,
		adjuster:   adj,
		renderer:   rnd,
		background: bg,
		view:       view,
		store:      store,
		logger:     logger,
		NewSurface: func(w, h int) FrameSurface { return render.NewGGSurface(w, h) },
		now:        time.Now,
	}
}

// Resize allocates a frame surface of w x h and repaints it.
func (p *SelectionPresenter) Resize(w, h int) {
	if p == nil || p.NewSurface == nil {
		return
	}
	if b := p.surfaceBounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	p.surface = p.NewSurface(w, h)
	p.Redraw()
}

func (p *SelectionPresenter) surfaceBounds() image.Rectangle {
	if p.surface == nil {
		return image.Rectangle{}
	}
	return p.surface.Bounds()
}

// PointerDown starts a drag. Ignored until the background is ready.
func (p *SelectionPresenter) PointerDown(x, y float64) {
	if p == nil || p.background == nil || !p.background.Ready() {
		return
	}
	p.model.SetDrag(p.model.Drag().Down(x, y))
	p.stats.BeginDrag(p.now())
	if p.view != nil {
		p.view.HideInfo()
	}
}

// PointerMove renders the live outline while dragging.
func (p *SelectionPresenter) PointerMove(x, y float64) {
	if p == nil {
		return
	}
	d, rect, ok := p.model.Drag().Move(x, y)
	if !ok {
		return
	}
	p.model.SetDrag(d)
	if p.surface != nil {
		p.renderer.DrawOutline(p.surface, rect)
		p.flush()
	}
}

// PointerUp finishes the drag. A release away from the last motion point
// counts as a final move.
func (p *SelectionPresenter) PointerUp(x, y float64) {
	if p == nil {
		return
	}
	d := p.model.Drag()
	if d.State != selection.StateDragging {
		return
	}
	if x != d.CurrentX || y != d.CurrentY {
		d, _, _ = d.Move(x, y)
	}
	d, rect, ok := d.Up()
	p.model.SetDrag(d)
	if !ok {
		p.stats.EndDrag(p.now(), nil)
		p.Redraw()
		return
	}
	res := p.apply(rect)
	p.stats.EndDrag(p.now(), &res)
	if p.view != nil {
		p.view.SetStatus(p.stats.Summary())
	}
	if p.store != nil {
		if err := p.store.SaveSelection(rect); err != nil && p.logger != nil {
			p.logger.Error("persist selection", "error", err)
		}
	}
	if p.logger != nil {
		p.logger.Info("selection adjusted",
			"mode", res.Mode.String(),
			"label", res.Label,
			"rect", res.Original.String(),
			"adjusted", res.Adjusted.String(),
			"policy", p.adjuster.Settings().Policy.String(),
		)
	}
}

// PointerLeave abandons an active drag and clears the outline.
func (p *SelectionPresenter) PointerLeave() {
	if p == nil || !p.model.Dragging() {
		return
	}
	p.model.SetDrag(p.model.Drag().Leave())
	p.stats.EndDrag(p.now(), nil)
	if p.surface != nil {
		p.renderer.DrawIdle(p.surface)
		p.flush()
	}
}

// Restore adjusts and shows r without persisting it, e.g. the selection
// saved by a previous run.
func (p *SelectionPresenter) Restore(r selection.Rect) {
	if p == nil || r.Empty() || p.background == nil || !p.background.Ready() {
		return
	}
	p.apply(r)
}

// apply adjusts r once, renders the result and shows its label.
func (p *SelectionPresenter) apply(r selection.Rect) selection.Result {
	res := p.adjuster.Adjust(r, p.background.Size())
	p.model.SetLast(res)
	p.drawResult(res)
	if p.view != nil {
		p.view.ShowInfo(res.Label)
	}
	return res
}

func (p *SelectionPresenter) drawResult(res selection.Result) {
	if p.surface == nil {
		return
	}
	p.renderer.DrawResult(p.surface, p.background.Image(), res)
	p.flush()
}

// Redraw repaints the last result, or an idle frame when there is none.
func (p *SelectionPresenter) Redraw() {
	if p == nil || p.surface == nil {
		return
	}
	if res, ok := p.model.Last(); ok && p.background != nil && p.background.Ready() {
		p.drawResult(res)
		return
	}
	p.renderer.DrawIdle(p.surface)
	p.flush()
}

func (p *SelectionPresenter) flush() {
	if p.view != nil {
		p.view.UpdateFrame(p.surface.Image())
	}
}

// readjust recomputes the last result after a settings change.
func (p *SelectionPresenter) readjust() {
	res, ok := p.model.Last()
	if !ok || p.background == nil || !p.background.Ready() {
		p.Redraw()
		return
	}
	p.apply(res.Original)
}

// SetPolicy switches the adjuster policy and re-adjusts the last selection.
func (p *SelectionPresenter) SetPolicy(policy selection.Policy) {
	if p == nil {
		return
	}
	s := p.adjuster.Settings()
	if s.Policy == policy {
		return
	}
	s.Policy = policy
	p.adjuster = selection.NewAdjuster(s)
	if p.logger != nil {
		p.logger.Info("policy changed", "policy", policy.String())
	}
	p.readjust()
}

// Policy returns the active adjuster policy.
func (p *SelectionPresenter) Policy() selection.Policy {
	if p == nil {
		return selection.PolicyClampToRatio
	}
	return p.adjuster.Settings().Policy
}

// SetTint toggles the tint overlay.
func (p *SelectionPresenter) SetTint(enabled bool) {
	if p == nil || p.renderer.Style().Tint == enabled {
		return
	}
	p.renderer = p.renderer.WithTint(enabled)
	p.Redraw()
}

// ApplySettings replaces the adjuster settings and re-adjusts the last selection.
func (p *SelectionPresenter) ApplySettings(s selection.Settings) {
	if p == nil {
		return
	}
	s = s.Normalize()
	if s == p.adjuster.Settings() {
		return
	}
	p.adjuster = selection.NewAdjuster(s)
	p.readjust()
}

// ApplyConfig takes adjuster and style values from cfg, e.g. after a reload.
func (p *SelectionPresenter) ApplyConfig(cfg *config.Config) {
	if p == nil || cfg == nil {
		return
	}
	opts := cfg.RenderOptions()
	if opts.SmartAnchor != p.renderer.Anchored() {
		p.renderer = render.NewRendererWithOptions(opts, p.logger)
	} else {
		style := p.renderer.Style()
		style.Tint = opts.Tint
		style.TintColor = opts.TintColor
		p.renderer = p.renderer.WithStyle(style)
	}
	s := cfg.AdjusterSettings()
	if s != p.adjuster.Settings() {
		p.adjuster = selection.NewAdjuster(s)
		p.readjust()
		return
	}
	p.Redraw()
}

// ExportCrop writes the adjusted region of the cover-fitted background at
// its target pixel size into dir and returns the file path.
func (p *SelectionPresenter) ExportCrop(dir string) (string, error) {
	if p == nil {
		return "", ErrNoSelection
	}
	res, ok := p.model.Last()
	if !ok {
		return "", ErrNoSelection
	}
	if p.background == nil || !p.background.Ready() {
		return "", ErrNotReady
	}
	size := selection.Size{Width: int(res.Adjusted.Width), Height: int(res.Adjusted.Height)}
	crop := render.RenderCrop(p.renderer.WithTint(false), p.background.Image(), size)
	path := filepath.Join(dir, images.CropFileName(size.Width, size.Height))
	n, err := images.Save(crop.Image(), path)
	if err != nil {
		return "", err
	}
	if p.logger != nil {
		p.logger.Info("crop exported", "path", path, "mode", res.Mode.String(), "fraction", res.Fraction, "bytes", humanize.Bytes(uint64(n)))
	}
	return path, nil
}

// ResetAnchor drops the renderer's cached anchor points.
func (p *SelectionPresenter) ResetAnchor() {
	if p != nil {
		p.renderer.ResetAnchor()
	}
}

// Last returns the most recent result.
func (p *SelectionPresenter) Last() (selection.Result, bool) {
	if p == nil {
		return selection.Result{}, false
	}
	return p.model.Last()
}
