package view

import (
	"image"

	"github.com/soocke/cropframe/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandler receives pointer events in frame coordinates.
type PointerHandler interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	PointerLeave()
}

// FrameView shows the rendered surface and forwards pointer events.
type FrameView interface {
	UpdateFrame(img image.Image)
	Size() (w, h int)
}

type frameView struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo, deleted before replacement
	w, h      int
}

// NewFrameView creates the frame label at row, spanning cols columns, and
// binds the drag gestures to h.
func NewFrameView(row, cols, w, h int, handler PointerHandler) FrameView {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, w, h))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	lbl := Label(Image(photo), Borderwidth(0), Cursor("crosshair"))
	Grid(lbl, Row(row), Column(0), Columnspan(cols), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v := &frameView{label: lbl, prevPhoto: photo, w: w, h: h}
	if handler != nil {
		Bind(lbl, "<ButtonPress-1>", Command(func(e *Event) { handler.PointerDown(pointer(e)) }))
		Bind(lbl, "<B1-Motion>", Command(func(e *Event) { handler.PointerMove(pointer(e)) }))
		Bind(lbl, "<ButtonRelease-1>", Command(func(e *Event) { handler.PointerUp(pointer(e)) }))
		Bind(lbl, "<Leave>", Command(func() { handler.PointerLeave() }))
	}
	return v
}

// pointer extracts the widget-relative event position.
func pointer(e *Event) (float64, float64) {
	if e == nil {
		return 0, 0
	}
	return float64(e.X), float64(e.Y)
}

func (v *frameView) UpdateFrame(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}

func (v *frameView) Size() (int, int) {
	if v == nil {
		return 0, 0
	}
	return v.w, v.h
}
