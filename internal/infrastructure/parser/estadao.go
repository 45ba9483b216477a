package parser

import (
	"rssdevalor/internal/dates"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/scraper"
)

// EstadaoExtractor reads Estadão columnist pages. The headline block carries
// title/link/summary/author, but the timestamp only appears in the separate
// latest-news list; when that list is missing the date falls back to now.
type EstadaoExtractor struct {
	normalizer *dates.Normalizer
}

var _ scraper.Extractor = (*EstadaoExtractor)(nil)

// NewEstadaoExtractor builds the extractor with its date normalizer.
func NewEstadaoExtractor(n *dates.Normalizer) *EstadaoExtractor {
	return &EstadaoExtractor{normalizer: n}
}

// Name identifies the strategy inside the registry.
func (e *EstadaoExtractor) Name() string { return "estadao" }

// Extract pulls the newest headline from the page.
func (e *EstadaoExtractor) Extract(doc *scraper.Document) (domain.Article, error) {
	anchor := doc.Root.Find("div.manchete-dia-a-dia-block-container").First()
	if anchor.Length() == 0 {
		return domain.Article{}, scraper.ErrNoArticle
	}

	link := hrefOf(anchor.Find("a"))
	if link == "" {
		return domain.Article{}, scraper.ErrNoArticle
	}

	publishedAt := e.normalizer.Now()
	if latest := doc.Root.Find("div.noticias-mais-recenter--item").First(); latest.Length() > 0 {
		dateStr := textOr(latest.Find("span.date"), "")
		publishedAt = e.normalizer.Normalize(dateStr, dates.CompositeBR)
	}

	return domain.Article{
		Title:       textOr(anchor.Find("h2.headline"), defaultTitle),
		Link:        link,
		Author:      textOr(anchor.Find("div.chapeu span"), unknownAuthorPT),
		Summary:     textOr(anchor.Find("p.subheadline"), ""),
		PublishedAt: publishedAt,
	}, nil
}
