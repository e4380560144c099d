package render

import (
	"math"

	"github.com/soocke/cropframe/domain/selection"
)

// CoverFit returns where an image of size img must be drawn so that it
// fully covers container, scaled uniformly with the overflow centered.
// An empty image or container yields an empty rectangle.
func CoverFit(img selection.Size, container selection.Rect) selection.Rect {
	if img.Empty() || container.Empty() {
		return selection.Rect{}
	}
	imgAspect := float64(img.Width) / float64(img.Height)
	containerAspect := container.Width / container.Height

	var drawW, drawH float64
	if imgAspect > containerAspect {
		drawH = container.Height
		drawW = container.Height * imgAspect
	} else {
		drawW = container.Width
		drawH = container.Width / imgAspect
	}
	return selection.Rect{
		X:      container.X - (drawW-container.Width)/2,
		Y:      container.Y - (drawH-container.Height)/2,
		Width:  drawW,
		Height: drawH,
	}
}

// CoverFitAt is CoverFit with the overflow positioned so that the image
// point (ax, ay), in image pixels, lands on the container center. The
// result is clamped so the image still covers the container.
func CoverFitAt(img selection.Size, container selection.Rect, ax, ay float64) selection.Rect {
	dst := CoverFit(img, container)
	if dst.Empty() {
		return dst
	}
	scale := dst.Width / float64(img.Width)
	cx, cy := container.Center()
	dst.X = clamp(cx-ax*scale, container.X+container.Width-dst.Width, container.X)
	dst.Y = clamp(cy-ay*scale, container.Y+container.Height-dst.Height, container.Y)
	return dst
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
