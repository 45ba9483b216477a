// Package feed assembles RSS 2.0 documents from extracted articles. Feeds
// are pure values: building one never fetches or touches history.
package feed

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Feed is an RSS 2.0 document root.
type Feed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel holds feed-level metadata and the items.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []Item `xml:"item"`
}

// Item is one publication. The GUID equals the article link and is marked
// non-permalink: a stable opaque identifier, not necessarily dereferenceable.
type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        GUID   `xml:"guid"`
}

// GUID carries the isPermaLink marker required by RSS 2.0.
type GUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// Render serializes the feed with an XML declaration.
func (f Feed) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
