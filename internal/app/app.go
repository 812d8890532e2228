package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/manifold/internal/config"
	"github.com/specialistvlad/manifold/internal/ctxlog"
	"github.com/specialistvlad/manifold/internal/manifest"
	"github.com/specialistvlad/manifold/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *config.Model
	resolver manifest.Resolver
	metrics  *metrics.Recorder
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. Declarations are loaded eagerly so a malformed file fails
// before any resolution starts.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader, resolver manifest.Resolver) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.UnitPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}
	logger.Debug("Declarations translated into unified model.", "units", len(model.Units), "files", len(model.Files))

	if resolver == nil {
		resolver = manifest.NewDefault()
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		resolver: resolver,
		metrics:  metrics.NewRecorder(),
	}, nil
}

// Model returns the loaded declaration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Metrics returns the app's metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}
