package theme

// Styling for the selection tool UI: a dark palette around the frame so the
// rendered crops stand out, plus semantic ttk styles for the toolbar.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#181818" // app background, close to the frame backdrop
	ColorSurface   = "#242424"
	ColorPrimary   = "#3b82f6"
	ColorDanger    = "#ef4444"
	ColorText      = "#f1f5f9"
	ColorTextMuted = "#94a3b8"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleInfoLabel     = "info.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

// InitStyles activates the base theme and configures the semantic styles.
func InitStyles() {
	_ = ActivateTheme("azure dark") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	// selection label, e.g. "Ultra - 3000x500 - 6:1 -> 1500:643"
	StyleConfigure(StyleInfoLabel,
		Foreground(ColorText),
		Background(ColorSurface),
		Padding("4p 2p"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorTextMuted),
		Background(ColorBg),
		Padding("2p 1p"),
	)
}
