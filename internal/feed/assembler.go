package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"rssdevalor/internal/domain"
)

const (
	language = "pt-br"

	// fallbackFeedLink keeps the channel link valid when a group ended the
	// run with no articles.
	fallbackFeedLink = "https://rssdevalor.dev/feeds"
)

func newItem(title string, article domain.Article) Item {
	return Item{
		Title:       title,
		Link:        article.Link,
		Description: article.Summary,
		Author:      article.Author,
		PubDate:     formatDate(article.PublishedAt),
		GUID:        GUID{IsPermaLink: "false", Value: article.Link},
	}
}

// BuildIndividual assembles the single-item feed for one source.
func BuildIndividual(sourceName, sourceURL string, article domain.Article) Feed {
	item := newItem(article.Title, article)
	return Feed{
		Version: "2.0",
		Channel: Channel{
			Title:         sourceName,
			Link:          sourceURL,
			Description:   fmt.Sprintf("Últimos artigos de %s", sourceName),
			Language:      language,
			LastBuildDate: item.PubDate,
			Items:         []Item{item},
		},
	}
}

// BuildGrouped assembles the merged feed for a group. Items are titled
// "{author}: {title}" and sorted by publish date descending; the sort is
// stable and a zero date orders as the current instant, without altering the
// item's own pubDate. The channel link is the first member's article link.
func BuildGrouped(groupKey, displayName string, entries []domain.GroupEntry) Feed {
	if displayName == "" {
		displayName = capitalize(groupKey)
	}

	link := fallbackFeedLink
	if len(entries) > 0 {
		link = entries[0].Article.Link
	}

	now := time.Now()
	sortKey := func(e domain.GroupEntry) time.Time {
		if e.Article.PublishedAt.IsZero() {
			return now
		}
		return e.Article.PublishedAt
	}

	sorted := make([]domain.GroupEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]).After(sortKey(sorted[j]))
	})

	items := make([]Item, 0, len(sorted))
	var lastBuild string
	for _, e := range sorted {
		item := newItem(fmt.Sprintf("%s: %s", e.Author, e.Article.Title), e.Article)
		if lastBuild == "" {
			lastBuild = item.PubDate
		}
		items = append(items, item)
	}

	return Feed{
		Version: "2.0",
		Channel: Channel{
			Title:         displayName,
			Link:          link,
			Description:   fmt.Sprintf("Últimos artigos de %s", displayName),
			Language:      language,
			LastBuildDate: lastBuild,
			Items:         items,
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
