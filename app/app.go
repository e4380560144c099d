package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/cropframe/config"
	"github.com/soocke/cropframe/debug"
	"github.com/soocke/cropframe/domain/background"
	"github.com/soocke/cropframe/domain/selection"
	"github.com/soocke/cropframe/ui/presenter"
	"github.com/soocke/cropframe/ui/view"
)

type app struct {
	c       *AppContainer
	title   string
	afterID string
	ctx     context.Context
	cancel  context.CancelFunc
	watcher *config.Watcher
}

// NewApp creates the window. overrides were already applied to cfg and are
// re-applied whenever the config file is reloaded.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger, overrides ...config.Override) *app {
	a := &app{title: title, c: BuildContainer(cfg, logger, cfgPath, overrides...)}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.c.Config.WindowWidth, a.c.Config.WindowHeight))
	return a
}

// Start builds the UI, kicks off background loading and blocks in the Tk
// event loop until the window closes.
func (a *app) Start() {
	c := a.c
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if c.Config.Debug {
		debug.StartRuntimeLogger(ctx, 5*time.Second, c.Logger)
		debug.StartMemLogger(ctx, 5*time.Second, c.Logger)
	}

	c.RootView.Build(view.Handlers{
		Pointer:        c.SelectionPresenter,
		OnPolicy:       a.onPolicy,
		OnToggleTint:   c.TintPresenter.Toggle,
		OnExport:       a.onExport,
		OnExit:         a.exitHandler,
		OnConfigChange: c.SelectionPresenter.ApplyConfig,
	})
	c.SelectionPresenter.Resize(c.UI.FrameSize())

	c.Dispatcher = presenter.NewDispatcher(a.scheduleTick)

	// Ready listeners run on the loader goroutine; hand over to the UI thread.
	c.Background.OnReady(func(image.Image) {
		c.Dispatcher.Post(a.onBackgroundReady)
	})
	a.ctx = ctx
	a.startBackground()

	if c.ConfigPath != "" {
		w, err := config.Watch(c.ConfigPath, c.Logger, func(next *config.Config, err error) {
			if err != nil {
				return
			}
			c.Dispatcher.Post(func() { a.onConfigReload(next) })
		})
		if err != nil {
			c.Logger.Warn("config hot reload disabled", "error", err)
		} else {
			a.watcher = w
		}
	}

	a.scheduleTick()
	App.Wait()
}

func (a *app) scheduleTick() {
	// Stay on Tk's event loop thread.
	a.afterID = TclAfter(presenter.DefaultTick, func() { a.c.Dispatcher.Tick() })
}

func (a *app) startBackground() {
	c := a.c
	src, err := background.ParseSource(c.Config.Background)
	if err != nil {
		c.Logger.Error("background source", "error", err)
		src = background.Source{Kind: background.KindEmbedded}
	}
	c.UI.SetStatus("Loading " + src.String() + "...")
	c.Background.Start(a.ctx, src)
}

func (a *app) onBackgroundReady() {
	c := a.c
	size := c.Background.Size()
	c.UI.SetStatus(fmt.Sprintf("Background %dx%d - drag to select", size.Width, size.Height))
	c.SelectionPresenter.ResetAnchor()
	c.SelectionPresenter.Redraw()
	if r, ok := c.Config.SavedSelection(); ok {
		c.SelectionPresenter.Restore(r)
	}
}

func (a *app) onPolicy(p selection.Policy) {
	c := a.c
	c.SelectionPresenter.SetPolicy(p)
	if err := c.Store.SavePolicy(p); err != nil {
		c.Logger.Error("persist policy", "error", err)
	}
}

func (a *app) onExport() {
	c := a.c
	path, err := c.SelectionPresenter.ExportCrop(c.Config.ExportDir)
	if err != nil {
		c.Logger.Warn("export crop", "error", err)
		c.UI.SetStatus("Export failed: " + err.Error())
		return
	}
	c.UI.SetStatus("Saved " + path)
}

// onConfigReload applies a config changed on disk, including our own saves.
func (a *app) onConfigReload(next *config.Config) {
	c := a.c
	prevBackground := c.Config.Background
	c.Store.Replace(next)
	if c.Config.Background != prevBackground {
		a.startBackground()
	}
	c.SelectionPresenter.ApplyConfig(c.Config)
	c.TintPresenter.Set(c.Config.Tint)
	c.UI.SetPolicy(c.SelectionPresenter.Policy())
	if c.RootView.ConfigPanel != nil {
		c.RootView.ConfigPanel.Refresh()
	}
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.cancel != nil {
		a.cancel()
	}
	Destroy(App)
}
