package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/soocke/cropframe/app"
	"github.com/soocke/cropframe/batch"
	"github.com/soocke/cropframe/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON config file")
	rects := flag.String("batch", "", `render rectangles headlessly, e.g. "10,10,100,50;0,0,3000,500"`)
	outDir := flag.String("out", "", "output directory for -batch (defaults to export_dir)")
	bg := flag.String("background", "", `background source: "embedded", "screen" or an image path`)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	// Set up logger
	logger := NewLogger(levelFor(cfg.Debug))
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	override := config.BackgroundOverride(*bg)
	override(cfg)

	if *rects != "" {
		os.Exit(runBatch(cfg, logger, *rects, *outDir))
	}

	application := app.NewApp("Cropframe", cfg, *cfgPath, logger, override)
	application.Start()
}

func runBatch(cfg *config.Config, logger *slog.Logger, rectList, outDir string) int {
	list, err := batch.ParseRects(rectList)
	if err != nil {
		logger.Error("invalid -batch value", "error", err)
		return 2
	}
	if outDir == "" {
		outDir = cfg.ExportDir
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := batch.Run(ctx, cfg, logger, list, outDir); err != nil {
		logger.Error("batch failed", "error", err)
		return 1
	}
	return 0
}
