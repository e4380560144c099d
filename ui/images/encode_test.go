package images

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"regexp"
	"testing"
)

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 7, 3))
	data := EncodePNG(src)
	if len(data) == 0 {
		t.Fatalf("expected png bytes")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}

func TestCropFileName_Format(t *testing.T) {
	name := CropFileName(1440, 608)
	if !regexp.MustCompile(`^crop-1440x608-[0-9a-f]{8}\.png$`).MatchString(name) {
		t.Fatalf("unexpected name %q", name)
	}
	if name == CropFileName(1440, 608) {
		t.Fatalf("names should be unique")
	}
}

func TestSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	n, err := Save(image.NewNRGBA(image.Rect(0, 0, 4, 4)), path)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n <= 0 {
		t.Fatalf("expected positive size, got %d", n)
	}
	if _, err := Save(nil, path); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
