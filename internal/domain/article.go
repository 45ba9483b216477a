package domain

import "time"

// Article is the normalized record extracted from one publisher page.
// Link is the identity: it drives both change detection and the item GUID.
type Article struct {
	Title       string
	Link        string
	Author      string
	Summary     string
	PublishedAt time.Time
}

// GroupEntry pairs an article with the columnist name used to prefix its
// title inside a merged group feed.
type GroupEntry struct {
	Author  string
	Article Article
}

// Outcome enumerates the terminal states of processing one source.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// SourceResult records what happened to a single source during a run.
type SourceResult struct {
	SourceID string
	Outcome  Outcome
	New      bool
	Err      error
}
