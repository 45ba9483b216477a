package parser

import (
	"rssdevalor/internal/dates"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/scraper"
)

// UOLExtractor reads UOL columnist listing pages. Dates come dot-separated
// with three-letter Portuguese month abbreviations ("28.ago.2024").
type UOLExtractor struct {
	normalizer *dates.Normalizer
}

var _ scraper.Extractor = (*UOLExtractor)(nil)

// NewUOLExtractor builds the extractor with its date normalizer.
func NewUOLExtractor(n *dates.Normalizer) *UOLExtractor {
	return &UOLExtractor{normalizer: n}
}

// Name identifies the strategy inside the registry.
func (e *UOLExtractor) Name() string { return "uol" }

// Extract pulls the newest listing item from the page.
func (e *UOLExtractor) Extract(doc *scraper.Document) (domain.Article, error) {
	anchor := doc.Root.Find("div.results-index .thumbnails-item").First()
	if anchor.Length() == 0 {
		return domain.Article{}, scraper.ErrNoArticle
	}

	link := hrefOf(anchor.Find("a.thumb-link"))
	if link == "" {
		return domain.Article{}, scraper.ErrNoArticle
	}

	dateStr := textOr(anchor.Find("time.thumb-date"), "")

	return domain.Article{
		Title:       textOr(anchor.Find("h3.thumb-title"), defaultTitle),
		Link:        link,
		Author:      textOr(anchor.Find("p.thumb-author"), unknownAuthorPT),
		Summary:     textOr(anchor.Find("p.thumb-description"), ""),
		PublishedAt: e.normalizer.Normalize(dateStr, dates.DotAbbrevPT),
	}, nil
}
