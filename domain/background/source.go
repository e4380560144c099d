package background

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Kind identifies where a background image comes from.
type Kind int

const (
	KindEmbedded Kind = iota
	KindFile
	KindScreen
)

func (k Kind) String() string {
	switch k {
	case KindEmbedded:
		return "embedded"
	case KindFile:
		return "file"
	case KindScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Source describes a background image location. Region limits a screen
// capture to part of the display; empty means the whole screen.
type Source struct {
	Kind   Kind
	Path   string
	Region image.Rectangle
}

// ParseSource accepts "embedded", "screen", "screen:x,y,w,h", "file:<path>"
// or a bare path.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "embedded", "default":
		return Source{Kind: KindEmbedded}, nil
	case "screen":
		return Source{Kind: KindScreen}, nil
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "screen:"); ok {
		r, err := parseRegion(rest)
		if err != nil {
			return Source{}, fmt.Errorf("screen region %q: %w", s, err)
		}
		return Source{Kind: KindScreen, Region: r}, nil
	}
	path := strings.TrimPrefix(s, "file:")
	if path == "" {
		return Source{}, fmt.Errorf("empty background path in %q", s)
	}
	return Source{Kind: KindFile, Path: path}, nil
}

func (s Source) String() string {
	switch {
	case s.Kind == KindFile:
		return "file:" + s.Path
	case s.Kind == KindScreen && !s.Region.Empty():
		r := s.Region
		return fmt.Sprintf("screen:%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	return s.Kind.String()
}

func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("want x,y,w,h")
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, err
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("empty region")
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
