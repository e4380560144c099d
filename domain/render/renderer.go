package render

import (
	"image"
	"image/color"

	"github.com/soocke/cropframe/domain/selection"
)

// AnchorProvider picks the image point cover-fit should center on.
// ok=false falls back to the geometric center.
type AnchorProvider interface {
	Anchor(img image.Image, container selection.Rect) (x, y float64, ok bool)
}

// Style holds the colours and widths used by the Renderer.
type Style struct {
	Backdrop             color.Color
	OriginalOutline      color.Color
	OriginalOutlineWidth float64
	AdjustedOutline      color.Color
	AdjustedOutlineWidth float64
	Tint                 bool
	TintColor            color.Color
}

// DefaultStyle matches the thin/thick white outlines of the selection tool.
func DefaultStyle() Style {
	return Style{
		Backdrop:             color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		OriginalOutline:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80},
		OriginalOutlineWidth: 1,
		AdjustedOutline:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xbf},
		AdjustedOutlineWidth: 2,
		Tint:                 false,
		TintColor:            color.NRGBA{A: 0x60},
	}
}

// Renderer paints adjustment results onto a Surface. It keeps no per-frame
// state and may be shared between surfaces.
type Renderer struct {
	style  Style
	anchor AnchorProvider
}

// NewRenderer returns a renderer. anchor may be nil for centered cover-fit.
func NewRenderer(style Style, anchor AnchorProvider) *Renderer {
	def := DefaultStyle()
	if style.Backdrop == nil {
		style.Backdrop = def.Backdrop
	}
	if style.OriginalOutline == nil {
		style.OriginalOutline = def.OriginalOutline
	}
	if style.AdjustedOutline == nil {
		style.AdjustedOutline = def.AdjustedOutline
	}
	if style.TintColor == nil {
		style.TintColor = def.TintColor
	}
	if style.OriginalOutlineWidth <= 0 {
		style.OriginalOutlineWidth = def.OriginalOutlineWidth
	}
	if style.AdjustedOutlineWidth <= 0 {
		style.AdjustedOutlineWidth = def.AdjustedOutlineWidth
	}
	return &Renderer{style: style, anchor: anchor}
}

// Style returns the effective style.
func (r *Renderer) Style() Style { return r.style }

// WithStyle returns a copy of r using style. Unset fields keep r's values.
func (r *Renderer) WithStyle(style Style) *Renderer {
	if style.Backdrop == nil {
		style.Backdrop = r.style.Backdrop
	}
	if style.OriginalOutline == nil {
		style.OriginalOutline = r.style.OriginalOutline
	}
	if style.AdjustedOutline == nil {
		style.AdjustedOutline = r.style.AdjustedOutline
	}
	if style.TintColor == nil {
		style.TintColor = r.style.TintColor
	}
	return NewRenderer(style, r.anchor)
}

// WithTint returns a copy of r with the tint overlay switched on or off.
func (r *Renderer) WithTint(enabled bool) *Renderer {
	cp := *r
	cp.style.Tint = enabled
	return &cp
}

// Placement returns where img is drawn when cover-fitted into container.
func (r *Renderer) Placement(img image.Image, container selection.Rect) selection.Rect {
	size := imageSize(img)
	if r.anchor != nil && !size.Empty() {
		if ax, ay, ok := r.anchor.Anchor(img, container); ok {
			return CoverFitAt(size, container, ax, ay)
		}
	}
	return CoverFit(size, container)
}

// DrawClippedRegion cover-fits img into container and paints it clipped to
// clip. A nil or zero-sized image is a no-op.
func (r *Renderer) DrawClippedRegion(s Surface, img image.Image, clip, container selection.Rect) {
	if s == nil || imageSize(img).Empty() || clip.Empty() {
		return
	}
	dst := r.Placement(img, container)
	if dst.Empty() {
		return
	}
	s.Save()
	defer s.Restore()
	s.ClipRect(clip)
	s.DrawImage(img, dst)
}

// DrawResult repaints the surface for a finished selection: the adjusted
// crop, the optional tint, the original crop taken from the same scaled
// image, then both outlines.
func (r *Renderer) DrawResult(s Surface, img image.Image, res selection.Result) {
	if s == nil {
		return
	}
	s.Clear(r.style.Backdrop)
	r.DrawClippedRegion(s, img, res.Adjusted, res.Adjusted)
	if r.style.Tint {
		s.FillRect(res.Adjusted, r.style.TintColor)
	}
	r.DrawClippedRegion(s, img, res.Original, res.Adjusted)
	s.StrokeRect(res.Original, r.style.OriginalOutline, r.style.OriginalOutlineWidth)
	s.StrokeRect(res.Adjusted, r.style.AdjustedOutline, r.style.AdjustedOutlineWidth)
}

// DrawOutline repaints the surface with only the live drag rectangle.
func (r *Renderer) DrawOutline(s Surface, rect selection.Rect) {
	if s == nil {
		return
	}
	s.Clear(r.style.Backdrop)
	s.StrokeRect(rect, r.style.OriginalOutline, r.style.OriginalOutlineWidth)
}

// DrawIdle clears the surface.
func (r *Renderer) DrawIdle(s Surface) {
	if s != nil {
		s.Clear(r.style.Backdrop)
	}
}

func imageSize(img image.Image) selection.Size {
	if img == nil {
		return selection.Size{}
	}
	b := img.Bounds()
	return selection.Size{Width: b.Dx(), Height: b.Dy()}
}

// Anchored reports whether cover-fit uses an anchor provider.
func (r *Renderer) Anchored() bool { return r.anchor != nil }

// ResetAnchor drops cached anchor points, e.g. after the background changed.
func (r *Renderer) ResetAnchor() {
	if rs, ok := r.anchor.(interface{ Reset() }); ok {
		rs.Reset()
	}
}
