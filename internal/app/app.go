// Package app initializes and holds long-lived application services, acting as a dependency injection container.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/share-preview/internal/api"
	"github.com/JakeFAU/share-preview/internal/assets/local"
	"github.com/JakeFAU/share-preview/internal/clock"
	"github.com/JakeFAU/share-preview/internal/config"
	collyfetcher "github.com/JakeFAU/share-preview/internal/fetcher/colly"
	"github.com/JakeFAU/share-preview/internal/logging"
	"github.com/JakeFAU/share-preview/internal/metadata"
	"github.com/JakeFAU/share-preview/internal/metrics"
	"github.com/JakeFAU/share-preview/internal/upload"
)

// App holds the shared services built from one Config: the site asset store,
// the metadata assembler and, when enabled, the upload service.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	assets    *local.Store
	assembler *metadata.Assembler
	uploader  *upload.Service
}

// New wires the application services. It fails fast when the site root is missing.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()

	assets, err := local.New(local.Config{Root: cfg.Site.Root})
	if err != nil {
		return nil, fmt.Errorf("open site root: %w", err)
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Accept:    cfg.Fetch.Accept,
		Timeout:   cfg.FetchTimeout(),
	}, logging.Component(logger, "fetcher"))

	a := &App{
		cfg:    cfg,
		logger: logger,
		assets: assets,
		assembler: metadata.NewAssembler(
			fetcher,
			assets,
			cfg.MetadataDefaults(),
			logging.Component(logger, "assembler"),
		),
	}
	if cfg.Upload.Enabled {
		a.uploader = upload.NewService(
			assets,
			cfg.Site.PublicDir,
			cfg.Upload.MaxBytes,
			clock.New(),
			logging.Component(logger, "upload"),
		)
	}

	logger.Info("application services initialized",
		zap.String("site_root", assets.Root()),
		zap.Bool("upload_enabled", cfg.Upload.Enabled),
	)
	return a, nil
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetConfig returns the configuration the App was built from.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetAssembler exposes the metadata assembler.
func (a *App) GetAssembler() *metadata.Assembler {
	return a.assembler
}

// Handler builds the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	var uploader api.Uploader
	if a.uploader != nil {
		uploader = a.uploader
	}
	return api.NewServer(a.assembler, uploader, a.cfg, logging.Component(a.logger, "api")).Handler()
}

// Close flushes the logger. It is called by a Cobra hook after the command finishes.
func (a *App) Close() {
	_ = a.logger.Sync() //nolint:errcheck // best-effort flush
}
