package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// DefaultBackgroundPNG is the bundled background used when no image is configured.
//
//go:embed default_background.png
var DefaultBackgroundPNG []byte

// DefaultBackground decodes the embedded PNG.
func DefaultBackground() (image.Image, error) {
	if len(DefaultBackgroundPNG) == 0 {
		return nil, fmt.Errorf("embedded default_background.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(DefaultBackgroundPNG))
	if err != nil {
		return nil, fmt.Errorf("decoding default background: %w", err)
	}
	return img, nil
}
