package catalog

import (
	"encoding/xml"
	"fmt"
)

type opml struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title string `xml:"title"`
}

type opmlBody struct {
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Children []outline `xml:"outline,omitempty"`
}

func (c Catalog) sourceOutline(s Source) outline {
	return outline{
		Text:    s.Name,
		Title:   s.Name,
		Type:    "rss",
		XMLURL:  c.feedURL(s.FeedFile),
		HTMLURL: s.URL,
	}
}

// OPML renders the subscription document: merged group feeds first, then
// each group's individual feeds, then ungrouped sources under "Other".
func (c Catalog) OPML() ([]byte, error) {
	doc := opml{
		Version: "2.0",
		Head:    opmlHead{Title: c.Title},
	}

	for _, key := range c.groupKeys() {
		name := c.DisplayName(key)
		doc.Body.Outlines = append(doc.Body.Outlines, outline{
			Text:   name,
			Title:  name,
			Type:   "rss",
			XMLURL: c.feedURL(GroupFeedFile(key)),
		})
	}

	for _, key := range c.groupKeys() {
		group := outline{Text: c.DisplayName(key), Title: c.DisplayName(key)}
		for _, s := range c.membersOf(key) {
			group.Children = append(group.Children, c.sourceOutline(s))
		}
		doc.Body.Outlines = append(doc.Body.Outlines, group)
	}

	if rest := c.ungrouped(); len(rest) > 0 {
		other := outline{Text: OtherGroup, Title: OtherGroup}
		for _, s := range rest {
			other.Children = append(other.Children, c.sourceOutline(s))
		}
		doc.Body.Outlines = append(doc.Body.Outlines, other)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal opml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
