// Package usecase drives the per-source pipeline: fetch, extract, compare
// against history, assemble feeds, and emit the catalog. Sources are
// processed sequentially; one source exhausting its retries never aborts
// the run.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"rssdevalor/internal/catalog"
	"rssdevalor/internal/config"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/feed"
	"rssdevalor/internal/ports"
	"rssdevalor/internal/scraper"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Registry *scraper.Registry
	Fetcher  ports.Fetcher
	History  ports.HistoryTracker
	Logger   *slog.Logger
}

// Pipeline implements the feed-generation workflow.
type Pipeline struct {
	cfg      config.Config
	registry *scraper.Registry
	fetcher  ports.Fetcher
	history  ports.HistoryTracker
	logger   *slog.Logger
	sleep    func(time.Duration)
}

// Summary aggregates the outcome of one run.
type Summary struct {
	RunID   string
	Results []domain.SourceResult
}

// Count tallies results in the given terminal state.
func (s Summary) Count(outcome domain.Outcome) int {
	var n int
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// NewCount tallies sources whose latest article changed this run.
func (s Summary) NewCount() int {
	var n int
	for _, r := range s.Results {
		if r.New {
			n++
		}
	}
	return n
}

// NewPipeline constructs the orchestration component.
func NewPipeline(cfg config.Config, deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: deps.Registry,
		fetcher:  deps.Fetcher,
		history:  deps.History,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Run processes every configured source in order, then flushes group feeds
// and the catalog artifacts.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", summary.RunID)

	if err := os.MkdirAll(p.cfg.Output.FeedsDir, 0o755); err != nil {
		return summary, fmt.Errorf("create feeds dir: %w", err)
	}
	if err := os.MkdirAll(p.cfg.Output.SiteDir, 0o755); err != nil {
		return summary, fmt.Errorf("create site dir: %w", err)
	}

	buckets := map[string][]domain.GroupEntry{}

	for _, src := range p.cfg.Sources {
		result := p.processSource(ctx, logger, src, buckets)
		summary.Results = append(summary.Results, result)
	}

	p.flushGroupFeeds(logger, buckets)
	p.emitCatalog(logger)

	logger.Info("run finished",
		"sources", len(summary.Results),
		"success", summary.Count(domain.OutcomeSuccess),
		"skipped", summary.Count(domain.OutcomeSkipped),
		"failed", summary.Count(domain.OutcomeFailed),
		"new", summary.NewCount())

	return summary, nil
}

// processSource runs the fetch/extract/compare/assemble pipeline for one
// source, retrying the whole attempt on failure up to the configured budget.
func (p *Pipeline) processSource(ctx context.Context, logger *slog.Logger, src config.SourceConfig, buckets map[string][]domain.GroupEntry) domain.SourceResult {
	log := logger.With("source", src.ID)

	extractor, err := p.registry.Resolve(src.Extractor)
	if err != nil {
		log.Warn("extractor not registered, skipping", "extractor", src.Extractor)
		return domain.SourceResult{SourceID: src.ID, Outcome: domain.OutcomeSkipped, Err: err}
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.Run.Attempts; attempt++ {
		if attempt > 1 {
			log.Info("retrying source", "attempt", attempt, "delay", p.cfg.Run.RetryDelay.Std())
			p.sleep(p.cfg.Run.RetryDelay.Std())
		}

		article, err := p.attempt(ctx, extractor, src)
		if err != nil {
			lastErr = err
			log.Warn("attempt failed", "attempt", attempt, "error", err)
			continue
		}

		isNew, err := p.history.IsNew(src.HistoryFile, article.Link)
		if err != nil {
			lastErr = err
			log.Warn("history read failed", "attempt", attempt, "error", err)
			continue
		}
		if isNew {
			if err := p.history.Record(src.HistoryFile, article.Link); err != nil {
				lastErr = err
				log.Warn("history write failed", "attempt", attempt, "error", err)
				continue
			}
			log.Info("new article", "link", article.Link, "title", article.Title)
		} else {
			log.Info("no new article", "link", article.Link)
		}

		p.writeFeed(log, src.FeedFile, feed.BuildIndividual(src.Name, src.URL, article))

		if src.Group != "" {
			buckets[src.Group] = append(buckets[src.Group], domain.GroupEntry{
				Author:  src.Name,
				Article: article,
			})
		}

		return domain.SourceResult{SourceID: src.ID, Outcome: domain.OutcomeSuccess, New: isNew}
	}

	log.Error("source failed after all attempts", "attempts", p.cfg.Run.Attempts, "error", lastErr)
	return domain.SourceResult{SourceID: src.ID, Outcome: domain.OutcomeFailed, Err: lastErr}
}

// attempt executes one fetch-and-extract round.
func (p *Pipeline) attempt(ctx context.Context, extractor scraper.Extractor, src config.SourceConfig) (domain.Article, error) {
	doc, err := p.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return domain.Article{}, err
	}

	article, err := extractor.Extract(doc)
	if err != nil {
		if errors.Is(err, scraper.ErrNoArticle) {
			return domain.Article{}, fmt.Errorf("%s: %w", src.URL, err)
		}
		return domain.Article{}, fmt.Errorf("extract %s: %w", src.URL, err)
	}

	return article, nil
}

// flushGroupFeeds emits one merged feed per configured group, including
// groups whose members all came up empty this run.
func (p *Pipeline) flushGroupFeeds(logger *slog.Logger, buckets map[string][]domain.GroupEntry) {
	seen := map[string]struct{}{}
	for _, src := range p.cfg.Sources {
		if src.Group == "" {
			continue
		}
		if _, done := seen[src.Group]; done {
			continue
		}
		seen[src.Group] = struct{}{}

		merged := feed.BuildGrouped(src.Group, p.cfg.Groups[src.Group], buckets[src.Group])
		p.writeFeed(logger.With("group", src.Group), catalog.GroupFeedFile(src.Group), merged)
	}
}

func (p *Pipeline) writeFeed(logger *slog.Logger, file string, f feed.Feed) {
	raw, err := f.Render()
	if err != nil {
		logger.Error("render feed failed", "file", file, "error", err)
		return
	}
	path := filepath.Join(p.cfg.Output.FeedsDir, file)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		logger.Error("write feed failed", "file", file, "error", err)
		return
	}
	logger.Debug("feed written", "file", file)
}

// emitCatalog writes the OPML tree and HTML index. Each artifact fails
// independently.
func (p *Pipeline) emitCatalog(logger *slog.Logger) {
	cat := catalog.Catalog{
		Title:      p.cfg.Output.Title,
		BaseURL:    p.cfg.Output.BaseURL,
		GroupNames: p.cfg.Groups,
	}
	for _, src := range p.cfg.Sources {
		cat.Sources = append(cat.Sources, catalog.Source{
			ID:       src.ID,
			Name:     src.Name,
			URL:      src.URL,
			Group:    src.Group,
			FeedFile: src.FeedFile,
		})
	}

	if raw, err := cat.OPML(); err != nil {
		logger.Error("render opml failed", "error", err)
	} else if err := os.WriteFile(filepath.Join(p.cfg.Output.SiteDir, "subscriptions.opml"), raw, 0o644); err != nil {
		logger.Error("write opml failed", "error", err)
	}

	if raw, err := cat.HTMLIndex(); err != nil {
		logger.Error("render index failed", "error", err)
	} else if err := os.WriteFile(filepath.Join(p.cfg.Output.SiteDir, "index.html"), raw, 0o644); err != nil {
		logger.Error("write index failed", "error", err)
	}
}

// EmitCatalogOnly writes just the OPML and HTML artifacts. Used by the
// catalog subcommand; it needs no network and no history.
func (p *Pipeline) EmitCatalogOnly() error {
	if err := os.MkdirAll(p.cfg.Output.SiteDir, 0o755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}
	p.emitCatalog(p.logger)
	return nil
}
