package render

import (
	"image/color"
	"log/slog"
)

// Options are the user-facing renderer settings.
type Options struct {
	Tint        bool
	TintColor   color.Color
	SmartAnchor bool
}

// NewRendererWithOptions builds a renderer from the default style and o. A
// smart anchor that fails to initialise falls back to centered cover-fit.
func NewRendererWithOptions(o Options, logger *slog.Logger) *Renderer {
	style := DefaultStyle()
	style.Tint = o.Tint
	if o.TintColor != nil {
		style.TintColor = o.TintColor
	}
	var anchor AnchorProvider
	if o.SmartAnchor {
		sa, err := NewSmartAnchor(logger)
		switch {
		case err == nil:
			anchor = sa
		case logger != nil:
			logger.Warn("smart anchor disabled", "error", err)
		}
	}
	return NewRenderer(style, anchor)
}
