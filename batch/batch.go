// Package batch renders selections headlessly, one PNG per rectangle.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/soocke/cropframe/config"
	"github.com/soocke/cropframe/domain/background"
	"github.com/soocke/cropframe/domain/render"
	"github.com/soocke/cropframe/domain/selection"
	"github.com/soocke/cropframe/ui/images"
)

// ParseRects parses "x,y,w,h;x,y,w,h". Empty entries are skipped.
func ParseRects(s string) ([]selection.Rect, error) {
	var out []selection.Rect
	for i, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("rect %d %q: want x,y,w,h", i+1, part)
		}
		var v [4]float64
		for j, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("rect %d %q: %w", i+1, part, err)
			}
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("rect %d %q: not a finite number", i+1, part)
			}
			v[j] = n
		}
		if v[2] < 0 || v[3] < 0 {
			return nil, fmt.Errorf("rect %d %q: negative size", i+1, part)
		}
		if v[2] > selection.MaxDimension || v[3] > selection.MaxDimension {
			return nil, fmt.Errorf("rect %d %q: side larger than %d", i+1, part, selection.MaxDimension)
		}
		out = append(out, selection.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rectangles in %q", s)
	}
	return out, nil
}

// Output describes one rendered rectangle.
type Output struct {
	Index  int
	Path   string
	Result selection.Result
}

// Run loads the configured background synchronously and renders every rect
// on its own window-sized surface in parallel, writing
// <outDir>/selection-<n>.png with n starting at 1.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, rects []selection.Rect, outDir string) ([]Output, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	src, err := background.ParseSource(cfg.Background)
	if err != nil {
		return nil, err
	}
	img, err := background.Load(ctx, src, logger)
	if err != nil {
		return nil, fmt.Errorf("loading background: %w", err)
	}
	b := img.Bounds()
	size := selection.Size{Width: b.Dx(), Height: b.Dy()}
	adj := selection.NewAdjuster(cfg.AdjusterSettings())
	rnd := render.NewRendererWithOptions(cfg.RenderOptions(), logger)

	outputs := make([]Output, len(rects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range rects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := adj.Adjust(r, size)
			s := render.NewGGSurface(cfg.WindowWidth, cfg.WindowHeight)
			rnd.DrawResult(s, img, res)
			path := filepath.Join(outDir, fmt.Sprintf("selection-%d.png", i+1))
			n, err := images.Save(s.Image(), path)
			if err != nil {
				return err
			}
			logger.Info("selection rendered",
				"index", i+1,
				"mode", res.Mode.String(),
				"label", res.Label,
				"rect", res.Original.String(),
				"adjusted", res.Adjusted.String(),
				"path", path,
				"bytes", humanize.Bytes(uint64(n)),
			)
			outputs[i] = Output{Index: i + 1, Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
