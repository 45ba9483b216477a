// Package parser holds the per-publisher extractors. Each one anchors on a
// fixed structural locator for the newest item and tolerates missing
// sub-fields with documented defaults; only a missing anchor (or an auth
// wall) means no article.
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTitle    = "No title found"
	unknownAuthorPT = "Autor Desconhecido"
	unknownAuthorEN = "Unknown Author"
)

func textOr(sel *goquery.Selection, fallback string) string {
	if sel.Length() == 0 {
		return fallback
	}
	text := strings.TrimSpace(sel.First().Text())
	if text == "" {
		return fallback
	}
	return text
}

func hrefOf(sel *goquery.Selection) string {
	href, _ := sel.First().Attr("href")
	return strings.TrimSpace(href)
}
