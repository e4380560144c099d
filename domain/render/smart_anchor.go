package render

import (
	"image"
	"log/slog"
	"math"
	"reflect"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/smartcrop"

	"github.com/soocke/cropframe/domain/selection"
)

const anchorCacheSize = 64

type anchorKey struct {
	image uintptr
	w, h  int
}

type anchorPoint struct{ x, y float64 }

// SmartAnchor centers cover-fit on the region smartcrop rates highest for
// the container's aspect ratio. Results are cached per image and aspect.
type SmartAnchor struct {
	analyzer smartcrop.Analyzer
	cache    *lru.Cache[anchorKey, anchorPoint]
	logger   *slog.Logger
}

// NewSmartAnchor builds an anchor provider backed by smartcrop.
func NewSmartAnchor(logger *slog.Logger) (*SmartAnchor, error) {
	cache, err := lru.New[anchorKey, anchorPoint](anchorCacheSize)
	if err != nil {
		return nil, err
	}
	return &SmartAnchor{
		analyzer: smartcrop.NewAnalyzer(&resizer{resampler: imaging.Box}),
		cache:    cache,
		logger:   logger,
	}, nil
}

// Anchor implements AnchorProvider.
func (a *SmartAnchor) Anchor(img image.Image, container selection.Rect) (float64, float64, bool) {
	if a == nil || img == nil || container.Empty() {
		return 0, 0, false
	}
	id := imageID(img)
	if id == 0 {
		return 0, 0, false
	}
	w, h := aspectKey(container)
	key := anchorKey{image: id, w: w, h: h}
	if p, ok := a.cache.Get(key); ok {
		return p.x, p.y, true
	}
	crop, err := a.analyzer.FindBestCrop(img, w, h)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("smart anchor failed", "error", err)
		}
		return 0, 0, false
	}
	// crop is relative to the image origin, not to img.Bounds().Min
	p := anchorPoint{
		x: float64(crop.Min.X) + float64(crop.Dx())/2,
		y: float64(crop.Min.Y) + float64(crop.Dy())/2,
	}
	a.cache.Add(key, p)
	if a.logger != nil {
		a.logger.Debug("smart anchor", "crop", crop.String(), "aspect_w", w, "aspect_h", h)
	}
	return p.x, p.y, true
}

// Reset drops cached anchors, e.g. after the background changed.
func (a *SmartAnchor) Reset() {
	if a != nil {
		a.cache.Purge()
	}
}

// aspectKey reduces the container size to a small integer ratio so that
// nearby rectangles share cache entries.
func aspectKey(r selection.Rect) (int, int) {
	w := int(math.Max(1, math.Round(r.Width)))
	h := int(math.Max(1, math.Round(r.Height)))
	const base = 100
	if w >= h {
		return base * w / h, base
	}
	return base, base * h / w
}

// imageID identifies pointer-backed images; other images are not cached.
func imageID(img image.Image) uintptr {
	v := reflect.ValueOf(img)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

// resizer satisfies smartcrop's Resizer with imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
