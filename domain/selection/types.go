package selection

import (
	"fmt"
	"math"
	"strings"
)

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FromPoints builds the rectangle spanned by two drag extremes.
func FromPoints(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Center returns the geometric center of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}

// Size is the natural pixel size of an image.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is zero.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Mode classifies an adjustment.
type Mode int

const (
	ModePro Mode = iota
	ModeUltra
)

func (m Mode) String() string {
	switch m {
	case ModePro:
		return "PRO"
	case ModeUltra:
		return "Ultra"
	default:
		return "unknown"
	}
}

// Policy selects how rectangles larger than the maximum side are handled.
type Policy int

const (
	// PolicyClampToRatio keeps in-range rectangles unadjusted and scales
	// out-of-range ones down to the maximum side.
	PolicyClampToRatio Policy = iota
	// PolicySnapToBound always reports Ultra and snaps out-of-range ratios
	// to the nearest bound.
	PolicySnapToBound
)

func (p Policy) String() string {
	switch p {
	case PolicyClampToRatio:
		return "clamp-to-ratio"
	case PolicySnapToBound:
		return "snap-to-bound"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp-to-ratio", "clamp":
		return PolicyClampToRatio, nil
	case "snap-to-bound", "snap":
		return PolicySnapToBound, nil
	default:
		return PolicyClampToRatio, fmt.Errorf("unknown policy %q", s)
	}
}

// Policies lists the supported policies in display order.
func Policies() []Policy { return []Policy{PolicyClampToRatio, PolicySnapToBound} }

// Result is the outcome of adjusting one drawn rectangle.
type Result struct {
	Mode     Mode
	Original Rect
	Adjusted Rect
	Label    string
	// Fraction is the reduced aspect ratio of the adjusted rectangle.
	Fraction string
	Image    Size
}

// Changed reports whether the adjusted rectangle differs in size from the original.
func (r Result) Changed() bool {
	return r.Original.Width != r.Adjusted.Width || r.Original.Height != r.Adjusted.Height
}
