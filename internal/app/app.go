package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
	"github.com/specialistvlad/beamgrid/internal/hclconfig"
	"github.com/specialistvlad/beamgrid/internal/publish"
	"github.com/specialistvlad/beamgrid/internal/yamlconfig"
)

// PublisherFactory builds the publisher used for a run's results.
type PublisherFactory func(cfg config.Publish) publish.Publisher

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	runID      string
	loaders    config.Loaders
	publisher  PublisherFactory
	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithLoaders replaces the plan loaders.
func WithLoaders(loaders config.Loaders) Option {
	return func(a *App) {
		a.loaders = loaders
	}
}

// WithPublisherFactory replaces the socket.io publisher.
func WithPublisherFactory(f PublisherFactory) Option {
	return func(a *App) {
		a.publisher = f
	}
}

// DefaultLoaders returns the plan loaders for every supported format.
func DefaultLoaders() config.Loaders {
	loaders := config.Loaders{hclconfig.Extension: hclconfig.NewLoader()}
	for _, ext := range yamlconfig.Extensions {
		loaders[ext] = yamlconfig.NewLoader()
	}
	return loaders
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Every App gets a
// fresh run id, attached to all of its log records.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		runID:   runID,
		loaders: DefaultLoaders(),
		publisher: func(pc config.Publish) publish.Publisher {
			return publish.NewSocketIO(pc)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ctx = ctxlog.WithLogger(context.Background(), logger)
	return a
}

// RunID returns the id attached to this App's logs and published results.
func (a *App) RunID() string {
	return a.runID
}
