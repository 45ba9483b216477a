package ports

import (
	"context"

	"rssdevalor/internal/scraper"
)

// Fetcher retrieves a publisher page as a parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*scraper.Document, error)
}

// HistoryTracker decides novelty against the persisted last-seen pointer
// and records the new pointer.
type HistoryTracker interface {
	IsNew(file, link string) (bool, error)
	Record(file, link string) error
}
