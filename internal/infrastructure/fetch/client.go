// Package fetch retrieves publisher pages with bounded retries. It retries
// transient upstream statuses (500/502/504) and connection errors with
// capped exponential backoff inside a single logical request; run-level
// retries are the pipeline's job.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rssdevalor/internal/scraper"
)

// Error is the typed failure surfaced when a page could not be retrieved
// within the attempt budget.
type Error struct {
	URL        string
	Attempts   int
	LastStatus int
	Cause      error
}

func (e *Error) Error() string {
	if e.LastStatus != 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempts", e.URL, e.LastStatus, e.Attempts)
	}
	return fmt.Sprintf("fetch %s: %v after %d attempts", e.URL, e.Cause, e.Attempts)
}

func (e *Error) Unwrap() error { return e.Cause }

// Options bound a client's retry behavior.
type Options struct {
	Timeout    time.Duration
	Retries    int
	Backoff    time.Duration
	MaxBackoff time.Duration
	UserAgent  string
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Retries <= 0 {
		o.Retries = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = 300 * time.Millisecond
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = 5 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = "rssdevalor/1.0"
	}
	return o
}

// Client performs page retrieval for the extractors.
type Client struct {
	http   *http.Client
	opts   Options
	logger *slog.Logger
	sleep  func(time.Duration)
}

// NewClient wires an HTTP client; a nil httpClient gets a timeout-bounded
// default.
func NewClient(httpClient *http.Client, opts Options, logger *slog.Logger) *Client {
	opts = opts.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{http: httpClient, opts: opts, logger: logger, sleep: time.Sleep}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Fetch retrieves url and parses it into a document. The document carries
// the final post-redirect URL so extractors can detect auth walls.
func (c *Client) Fetch(ctx context.Context, url string) (*scraper.Document, error) {
	var (
		lastStatus int
		lastErr    error
		attempts   int
	)

	backoff := c.opts.Backoff
	for attempt := 1; attempt <= c.opts.Retries; attempt++ {
		attempts = attempt
		if attempt > 1 {
			c.sleep(backoff)
			backoff *= 2
			if backoff > c.opts.MaxBackoff {
				backoff = c.opts.MaxBackoff
			}
		}

		doc, status, err := c.fetchOnce(ctx, url)
		if err == nil && doc != nil {
			return doc, nil
		}

		lastStatus = status
		lastErr = err
		if status != 0 && !retryableStatus(status) {
			break
		}

		if c.logger != nil {
			c.logger.Debug("fetch attempt failed",
				"url", url, "attempt", attempt, "status", status, "error", err)
		}
	}

	return nil, &Error{URL: url, Attempts: attempts, LastStatus: lastStatus, Cause: lastErr}
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*scraper.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	root, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("parse document: %w", err)
	}

	resolved := url
	if resp.Request != nil && resp.Request.URL != nil {
		resolved = resp.Request.URL.String()
	}

	return &scraper.Document{Root: root, ResolvedURL: resolved}, 0, nil
}
