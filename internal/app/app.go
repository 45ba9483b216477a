package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rssdevalor/internal/config"
	"rssdevalor/internal/dates"
	"rssdevalor/internal/infrastructure/fetch"
	"rssdevalor/internal/infrastructure/parser"
	"rssdevalor/internal/infrastructure/storage"
	"rssdevalor/internal/logging"
	"rssdevalor/internal/scraper"
	"rssdevalor/internal/usecase"
)

// The Post publishes in US/Eastern regardless of where this runs.
const easternTimezone = "US/Eastern"

// Application wires config to the pipeline and its adapters.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	eastern, err := time.LoadLocation(easternTimezone)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", easternTimezone, err)
	}

	datesLogger := baseLogger.With("component", "dates")
	local := dates.NewNormalizer(cfg.Location(), datesLogger)
	wapo := dates.NewNormalizer(eastern, datesLogger)

	registry := scraper.NewRegistry()
	registry.Register(parser.NewValorExtractor(local))
	registry.Register(parser.NewFolhaExtractor(local))
	registry.Register(parser.NewEstadaoExtractor(local))
	registry.Register(parser.NewUOLExtractor(local))
	registry.Register(parser.NewWashingtonPostExtractor(wapo))

	history, err := storage.NewFileStore(cfg.Output.HistoryDir)
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(nil, fetch.Options{
		Timeout:    cfg.Fetch.Timeout.Std(),
		Retries:    cfg.Fetch.Retries,
		Backoff:    cfg.Fetch.Backoff.Std(),
		MaxBackoff: cfg.Fetch.MaxBackoff.Std(),
		UserAgent:  cfg.Fetch.UserAgent,
	}, baseLogger.With("component", "fetch"))

	pipeline := usecase.NewPipeline(cfg, usecase.PipelineDeps{
		Registry: registry,
		Fetcher:  client,
		History:  history,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}, nil
}

// Run executes one full pipeline pass over all configured sources.
func (a *Application) Run(ctx context.Context) error {
	_, err := a.pipeline.Run(ctx)
	return err
}

// EmitCatalog writes only the OPML and HTML artifacts.
func (a *Application) EmitCatalog() error {
	return a.pipeline.EmitCatalogOnly()
}
