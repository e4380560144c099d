package render

import (
	"image"
	"image/color"

	"github.com/soocke/cropframe/domain/selection"
)

// Surface is the 2D drawing target used by the Renderer. Save and Restore
// bracket clip changes the same way a canvas save/restore does.
type Surface interface {
	Bounds() image.Rectangle
	Clear(c color.Color)
	Save()
	Restore()
	ClipRect(r selection.Rect)
	// DrawImage paints img scaled to exactly fill dst, honouring the clip.
	DrawImage(img image.Image, dst selection.Rect)
	FillRect(r selection.Rect, c color.Color)
	StrokeRect(r selection.Rect, c color.Color, width float64)
}
