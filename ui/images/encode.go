package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
// Frames are re-encoded on every pointer move, so the fastest compression level is used.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	_ = enc.Encode(&buf, img)
	return buf.Bytes()
}

// CropFileName returns a unique file name for an exported crop, e.g.
// "crop-1440x608-2f1c0b7e.png".
func CropFileName(w, h int) string {
	id := uuid.New().String()
	return fmt.Sprintf("crop-%dx%d-%s.png", w, h, id[:8])
}

// Save writes img to path, creating parent directories. The format follows
// the file extension. It returns the written file size.
func Save(img image.Image, path string) (int64, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, fmt.Errorf("save %s: empty image", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return 0, fmt.Errorf("saving %s: %w", path, err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return fi.Size(), nil
}
