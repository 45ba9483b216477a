package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rssdevalor/internal/dates"
	"rssdevalor/internal/domain"
	"rssdevalor/internal/scraper"
)

// WashingtonPostExtractor reads the first homepage story card. The Post
// sometimes answers with a redirect to its sign-in/subscribe wall; that is
// detected on the resolved URL and reported as no article rather than a
// failure.
type WashingtonPostExtractor struct {
	normalizer *dates.Normalizer
}

var _ scraper.Extractor = (*WashingtonPostExtractor)(nil)

// NewWashingtonPostExtractor builds the extractor with its date normalizer.
func NewWashingtonPostExtractor(n *dates.Normalizer) *WashingtonPostExtractor {
	return &WashingtonPostExtractor{normalizer: n}
}

// Name identifies the strategy inside the registry.
func (e *WashingtonPostExtractor) Name() string { return "washingtonpost" }

func behindAuthWall(resolvedURL string) bool {
	lowered := strings.ToLower(resolvedURL)
	return strings.Contains(lowered, "/subscribe") || strings.Contains(lowered, "signin")
}

// Extract pulls the newest story card from the page.
func (e *WashingtonPostExtractor) Extract(doc *scraper.Document) (domain.Article, error) {
	if behindAuthWall(doc.ResolvedURL) {
		return domain.Article{}, scraper.ErrNoArticle
	}

	anchor := doc.Root.Find(`div[data-feature-id="homepage/story"]`).First()
	if anchor.Length() == 0 {
		return domain.Article{}, scraper.ErrNoArticle
	}

	link := hrefOf(anchor.Find(`a[data-pb-local-content-field="web_headline"]`))
	if link == "" {
		return domain.Article{}, scraper.ErrNoArticle
	}

	var authors []string
	anchor.Find("span.wpds-c-iVfWzS a").Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	author := unknownAuthorEN
	if len(authors) > 0 {
		author = strings.Join(authors, ", ")
	}

	dateStr := textOr(anchor.Find(`span[data-testid="timestamp"]`), "")

	return domain.Article{
		Title:       textOr(anchor.Find(`h3[data-qa="card-title"]`), defaultTitle),
		Link:        link,
		Author:      author,
		Summary:     textOr(anchor.Find("p.font-size-blurb"), ""),
		PublishedAt: e.normalizer.Normalize(dateStr, dates.MonthEN),
	}, nil
}
