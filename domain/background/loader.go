package background

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vova616/screenshot"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/soocke/cropframe/assets"
	"github.com/soocke/cropframe/domain/selection"
)

// ReadyListener is invoked once per successful load, on the loader goroutine.
type ReadyListener func(img image.Image)

// Loader fetches the background image asynchronously and publishes it once
// decoded. Until then Ready reports false and Image returns nil.
type Loader struct {
	logger    *slog.Logger
	current   atomic.Pointer[loaded]
	lastErr   atomic.Pointer[error]
	sequence  atomic.Uint64
	mu        sync.Mutex
	listeners []ReadyListener
}

type loaded struct {
	img    image.Image
	source Source
	at     time.Time
}

// NewLoader returns an idle loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Start loads src in the background. A later Start supersedes an earlier
// one that has not finished yet.
func (l *Loader) Start(ctx context.Context, src Source) {
	seq := l.sequence.Add(1)
	go func() {
		defer func() {
			if r := recover(); r != nil && l.logger != nil {
				l.logger.Error("background load panic", "error", r)
			}
		}()
		img, err := Load(ctx, src, l.logger)
		if seq != l.sequence.Load() {
			return
		}
		if err != nil {
			l.lastErr.Store(&err)
			if l.logger != nil {
				l.logger.Error("background load", "source", src.String(), "error", err)
			}
			return
		}
		l.publish(img, src)
	}()
}

// Set publishes an already decoded image.
func (l *Loader) Set(img image.Image, src Source) {
	if img == nil {
		return
	}
	l.sequence.Add(1)
	l.publish(img, src)
}

func (l *Loader) publish(img image.Image, src Source) {
	l.lastErr.Store(nil)
	l.mu.Lock()
	l.current.Store(&loaded{img: img, source: src, at: time.Now()})
	listeners := append([]ReadyListener(nil), l.listeners...)
	l.mu.Unlock()
	if l.logger != nil {
		b := img.Bounds()
		l.logger.Info("background ready", "source", src.String(), "width", b.Dx(), "height", b.Dy())
	}
	for _, fn := range listeners {
		fn(img)
	}
}

// OnReady registers fn. If an image is already loaded fn runs immediately.
func (l *Loader) OnReady(fn ReadyListener) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	cur := l.current.Load()
	l.mu.Unlock()
	if cur != nil {
		fn(cur.img)
	}
}

// Ready reports whether an image is available for drawing.
func (l *Loader) Ready() bool {
	if l == nil {
		return false
	}
	return l.current.Load() != nil
}

// Image returns the loaded image or nil.
func (l *Loader) Image() image.Image {
	if l == nil {
		return nil
	}
	if cur := l.current.Load(); cur != nil {
		return cur.img
	}
	return nil
}

// Size returns the natural size of the loaded image, zero when not ready.
func (l *Loader) Size() selection.Size {
	img := l.Image()
	if img == nil {
		return selection.Size{}
	}
	b := img.Bounds()
	return selection.Size{Width: b.Dx(), Height: b.Dy()}
}

// Source returns the source of the currently published image.
func (l *Loader) Source() (Source, bool) {
	if l == nil {
		return Source{}, false
	}
	if cur := l.current.Load(); cur != nil {
		return cur.source, true
	}
	return Source{}, false
}

// Err returns the error of the most recent failed load, if any.
func (l *Loader) Err() error {
	if l == nil {
		return nil
	}
	if p := l.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Load fetches and decodes src synchronously.
func Load(ctx context.Context, src Source, logger *slog.Logger) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		img image.Image
		err error
	)
	switch src.Kind {
	case KindEmbedded:
		img, err = assets.DefaultBackground()
	case KindScreen:
		img, err = grabScreen(src.Region)
	case KindFile:
		img, err = decodeFile(src.Path, logger)
	default:
		err = fmt.Errorf("unsupported background source %q", src.String())
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("background %s is empty", src.String())
	}
	return img, nil
}

// grabScreen captures region, or the whole screen when region is empty.
func grabScreen(region image.Rectangle) (image.Image, error) {
	var (
		img *image.RGBA
		err error
	)
	if region.Empty() {
		img, err = screenshot.CaptureScreen()
	} else {
		img, err = screenshot.CaptureRect(region)
	}
	if err != nil {
		return nil, fmt.Errorf("capturing screen: %w", err)
	}
	return img, nil
}

func decodeFile(path string, logger *slog.Logger) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading background: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding background %s: %w", path, err)
	}
	if logger != nil {
		logger.Debug("background decoded", "path", path, "format", format, "bytes", humanize.Bytes(uint64(len(data))))
	}
	return img, nil
}
