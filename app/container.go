package app

import (
	"log/slog"

	"github.com/soocke/cropframe/config"
	"github.com/soocke/cropframe/domain/background"
	"github.com/soocke/cropframe/domain/render"
	"github.com/soocke/cropframe/domain/selection"
	"github.com/soocke/cropframe/ui/model"
	"github.com/soocke/cropframe/ui/presenter"
	"github.com/soocke/cropframe/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Background *background.Loader
	Adjuster   *selection.Adjuster
	Renderer   *render.Renderer
	Selection  *model.SelectionModel
	Stats      *model.StatsModel
	Tint       *model.FlagModel
	Store      *config.Store
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	SelectionPresenter *presenter.SelectionPresenter
	TintPresenter      *presenter.TintPresenter
	Dispatcher         *presenter.Dispatcher
}

// BuildContainer constructs all components. No side effects: the view is
// built and the background loaded by the app.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string, overrides ...config.Override) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Background = background.NewLoader(logger)
	c.Adjuster = selection.NewAdjuster(cfg.AdjusterSettings())
	c.Renderer = render.NewRendererWithOptions(cfg.RenderOptions(), logger)
	c.Selection = model.NewSelectionModel()
	c.Stats = model.NewStatsModel()
	c.Tint = &model.FlagModel{}
	c.Tint.Set(cfg.Tint)
	c.Store = config.NewStore(cfg, cfgPath, overrides...)
	// View
	c.RootView = view.NewRootView(cfg, c.Store, logger)
	c.UI = c.RootView
	// Presenters
	c.SelectionPresenter = presenter.NewSelectionPresenter(c.Selection, c.Stats, c.Adjuster, c.Renderer, c.Background, c.UI, c.Store, logger)
	c.TintPresenter = presenter.NewTintPresenter(c.Tint, c.SelectionPresenter, c.UI, func(on bool) {
		if err := c.Store.SaveTint(on); err != nil && logger != nil {
			logger.Error("persist tint", "error", err)
		}
	})
	return c
}
