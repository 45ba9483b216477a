package parser

import (
	"strings"

	"rssdevalor/internal/dates"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/scraper"
)

// FolhaExtractor reads the opinion headline block on Folha columnist pages.
// The publish date comes from the dateline's datetime attribute; the author
// lives outside the headline block, in the page kicker.
type FolhaExtractor struct {
	normalizer *dates.Normalizer
}

var _ scraper.Extractor = (*FolhaExtractor)(nil)

// NewFolhaExtractor builds the extractor with its date normalizer.
func NewFolhaExtractor(n *dates.Normalizer) *FolhaExtractor {
	return &FolhaExtractor{normalizer: n}
}

// Name identifies the strategy inside the registry.
func (e *FolhaExtractor) Name() string { return "folha" }

// Extract pulls the newest opinion headline from the page.
func (e *FolhaExtractor) Extract(doc *scraper.Document) (domain.Article, error) {
	anchor := doc.Root.Find("div.c-headline.c-headline--opinion").First()
	if anchor.Length() == 0 {
		return domain.Article{}, scraper.ErrNoArticle
	}

	link := hrefOf(anchor.Find("a.c-headline__url"))
	if link == "" {
		return domain.Article{}, scraper.ErrNoArticle
	}

	dateStr, _ := anchor.Find("time.c-headline__dateline").First().Attr("datetime")
	dateStr = strings.TrimSpace(dateStr)

	return domain.Article{
		Title:       textOr(anchor.Find("h2.c-headline__title"), defaultTitle),
		Link:        link,
		Author:      textOr(doc.Root.Find(`div[data-qa="kicker"]`), unknownAuthorPT),
		Summary:     textOr(anchor.Find("p.c-headline__standfirst"), ""),
		PublishedAt: e.normalizer.Normalize(dateStr, dates.ISOClock),
	}, nil
}
