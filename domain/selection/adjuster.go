package selection

import (
	"fmt"
	"math"
)

const (
	DefaultMaxSide  = 1440
	DefaultGrid     = 32
	DefaultMinRatio = 9.0 / 21.0
	DefaultMaxRatio = 21.0 / 9.0

	// MaxDimension bounds a rectangle side in pixels.
	MaxDimension = 1 << 20
)

// Settings are the fixed parameters of an Adjuster.
type Settings struct {
	MaxSide  int
	MinRatio float64
	MaxRatio float64
	Grid     int
	Policy   Policy
}

// DefaultSettings returns the standard 1440 / 9:21..21:9 / 32 configuration.
func DefaultSettings() Settings {
	return Settings{
		MaxSide:  DefaultMaxSide,
		MinRatio: DefaultMinRatio,
		MaxRatio: DefaultMaxRatio,
		Grid:     DefaultGrid,
		Policy:   PolicyClampToRatio,
	}
}

// Normalize replaces unusable values with defaults.
func (s Settings) Normalize() Settings {
	if s.MaxSide <= 0 {
		s.MaxSide = DefaultMaxSide
	}
	if s.Grid <= 0 {
		s.Grid = DefaultGrid
	}
	if s.MinRatio <= 0 || math.IsNaN(s.MinRatio) || math.IsInf(s.MinRatio, 0) {
		s.MinRatio = DefaultMinRatio
	}
	if s.MaxRatio <= 0 || math.IsNaN(s.MaxRatio) || math.IsInf(s.MaxRatio, 0) {
		s.MaxRatio = DefaultMaxRatio
	}
	if s.MinRatio > s.MaxRatio {
		s.MinRatio, s.MaxRatio = s.MaxRatio, s.MinRatio
	}
	if s.Policy != PolicyClampToRatio && s.Policy != PolicySnapToBound {
		s.Policy = PolicyClampToRatio
	}
	return s
}

// Adjuster classifies and resizes drawn rectangles. It is immutable and safe
// for concurrent use. A nil *Adjuster uses DefaultSettings.
type Adjuster struct {
	settings Settings
}

// NewAdjuster returns an Adjuster using the normalized settings.
func NewAdjuster(s Settings) *Adjuster {
	return &Adjuster{settings: s.Normalize()}
}

// Settings returns the effective settings.
func (a *Adjuster) Settings() Settings {
	if a == nil {
		return DefaultSettings()
	}
	return a.settings
}

// Adjust computes the mode, the adjusted rectangle and the label for r.
// Dimensions below one pixel are treated as one pixel, so the function is
// total. The adjusted rectangle is centered on r.
func (a *Adjuster) Adjust(r Rect, img Size) Result {
	s := a.Settings()

	w := pixels(r.Width)
	h := pixels(r.Height)
	ratio := float64(w) / float64(h)

	aw, ah := w, h
	mode := ModePro
	var label string

	if w <= s.MaxSide && h <= s.MaxSide {
		aw = ceilToGrid(w, s.Grid)
		ah = ceilToGrid(h, s.Grid)
		label = fmt.Sprintf("%s - %dx%d - %dx%d", mode, w, h, aw, ah)
	} else {
		switch s.Policy {
		case PolicySnapToBound:
			mode = ModeUltra
			switch {
			case ratio < s.MinRatio:
				aw = int(math.Round(float64(h) * s.MinRatio))
			case ratio > s.MaxRatio:
				ah = int(math.Round(float64(w) / s.MaxRatio))
			}
			aw, ah = max(aw, 1), max(ah, 1)
			label = fmt.Sprintf("%s - %dx%d - %s", mode, w, h, AspectFraction(w, h))
			if aw != w || ah != h {
				if adjusted := AspectFraction(aw, ah); adjusted != AspectFraction(w, h) {
					label += " -> " + adjusted
				}
			}
		default:
			if ratio >= s.MinRatio && ratio <= s.MaxRatio {
				mode = ModeUltra
				label = fmt.Sprintf("%s - %dx%d - %s", mode, w, h, AspectFraction(w, h))
				break
			}
			// Out of range: fall back to a PRO-sized rectangle whose larger
			// side is MaxSide.
			if w > h {
				aw = s.MaxSide
				ah = ceilFloatToGrid(float64(s.MaxSide*h)/float64(w), s.Grid)
			} else {
				ah = s.MaxSide
				aw = ceilFloatToGrid(float64(s.MaxSide*w)/float64(h), s.Grid)
			}
			label = fmt.Sprintf("%s - %dx%d - %dx%d", mode, w, h, aw, ah)
		}
	}

	return Result{
		Mode:     mode,
		Original: r,
		Adjusted: Rect{
			X:      r.X + (r.Width-float64(aw))/2,
			Y:      r.Y + (r.Height-float64(ah))/2,
			Width:  float64(aw),
			Height: float64(ah),
		},
		Label:    label,
		Fraction: AspectFraction(aw, ah),
		Image:    img,
	}
}

// pixels rounds a dimension to whole pixels within [1, MaxDimension].
func pixels(v float64) int {
	switch {
	case math.IsNaN(v) || v < 1:
		return 1
	case v > MaxDimension:
		return MaxDimension
	}
	return int(math.Round(v))
}

func ceilToGrid(d, grid int) int {
	return (d + grid - 1) / grid * grid
}

func ceilFloatToGrid(v float64, grid int) int {
	n := int(math.Ceil(v/float64(grid))) * grid
	if n < grid {
		return grid
	}
	return n
}
