package parser

import (
	"rssdevalor/internal/dates"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/scraper"
)

// ValorExtractor reads the Globo feed widget used by Valor and O Globo
// columnist pages. Dates are relative Portuguese ("Há 2 horas", "ontem").
type ValorExtractor struct {
	normalizer *dates.Normalizer
}

var _ scraper.Extractor = (*ValorExtractor)(nil)

// NewValorExtractor builds the extractor with its date normalizer.
func NewValorExtractor(n *dates.Normalizer) *ValorExtractor {
	return &ValorExtractor{normalizer: n}
}

// Name identifies the strategy inside the registry.
func (e *ValorExtractor) Name() string { return "valor" }

// Extract pulls the newest feed item from the page.
func (e *ValorExtractor) Extract(doc *scraper.Document) (domain.Article, error) {
	anchor := doc.Root.Find("div.bastian-feed-item").First()
	if anchor.Length() == 0 {
		return domain.Article{}, scraper.ErrNoArticle
	}

	link := hrefOf(anchor.Find("a"))
	if link == "" {
		return domain.Article{}, scraper.ErrNoArticle
	}

	dateStr := textOr(anchor.Find("span.feed-post-datetime"), "")

	return domain.Article{
		Title:       textOr(anchor.Find("h2.feed-post-link"), defaultTitle),
		Link:        link,
		Author:      textOr(anchor.Find("span.feed-post-metadata-section"), unknownAuthorPT),
		Summary:     textOr(anchor.Find("p.feed-post-body-resumo"), ""),
		PublishedAt: e.normalizer.Normalize(dateStr, dates.RelativePT),
	}, nil
}
