package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/disintegration/imaging"

	"github.com/soocke/cropframe/domain/selection"
)

// GGSurface is a raster Surface backed by a gg drawing context.
type GGSurface struct {
	dc        *gg.Context
	resampler imaging.ResampleFilter
}

// NewGGSurface allocates a w x h surface (minimum 1x1).
func NewGGSurface(w, h int) *GGSurface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &GGSurface{dc: gg.NewContext(w, h), resampler: imaging.Linear}
}

func (s *GGSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

func (s *GGSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *GGSurface) Save()    { s.dc.Push() }
func (s *GGSurface) Restore() { s.dc.Pop() }

func (s *GGSurface) ClipRect(r selection.Rect) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.Clip()
}

// DrawImage scales only the part of img that lands on the surface, so large
// destination rectangles do not allocate a full-size scaled copy.
func (s *GGSurface) DrawImage(img image.Image, dst selection.Rect) {
	if img == nil || dst.Empty() {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	sb := s.Bounds()
	x0 := math.Max(dst.X, float64(sb.Min.X))
	y0 := math.Max(dst.Y, float64(sb.Min.Y))
	x1 := math.Min(dst.X+dst.Width, float64(sb.Max.X))
	y1 := math.Min(dst.Y+dst.Height, float64(sb.Max.Y))
	outW := int(math.Round(x1 - x0))
	outH := int(math.Round(y1 - y0))
	if outW < 1 || outH < 1 {
		return
	}

	sx := float64(b.Dx()) / dst.Width
	sy := float64(b.Dy()) / dst.Height
	src := image.Rect(
		b.Min.X+int(math.Floor((x0-dst.X)*sx)),
		b.Min.Y+int(math.Floor((y0-dst.Y)*sy)),
		b.Min.X+int(math.Ceil((x1-dst.X)*sx)),
		b.Min.Y+int(math.Ceil((y1-dst.Y)*sy)),
	).Intersect(b)
	if src.Empty() {
		return
	}
	part := imaging.Resize(imaging.Crop(img, src), outW, outH, s.resampler)
	s.dc.DrawImage(part, int(math.Round(x0)), int(math.Round(y0)))
}

func (s *GGSurface) FillRect(r selection.Rect, c color.Color) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *GGSurface) StrokeRect(r selection.Rect, c color.Color, width float64) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.Stroke()
}

// Image returns the backing raster.
func (s *GGSurface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the surface as PNG.
func (s *GGSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// RenderCrop paints the cover-fitted image into a fresh size-sized surface,
// i.e. the content of an adjusted rectangle at its target pixel size.
func RenderCrop(r *Renderer, img image.Image, size selection.Size) *GGSurface {
	s := NewGGSurface(size.Width, size.Height)
	full := selection.Rect{Width: float64(s.dc.Width()), Height: float64(s.dc.Height())}
	s.Clear(r.style.Backdrop)
	r.DrawClippedRegion(s, img, full, full)
	return s
}
