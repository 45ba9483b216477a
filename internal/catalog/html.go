package catalog

import (
	"bytes"
	"fmt"
	"html/template"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="pt-br">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.SourceCount}} fontes em {{.GroupCount}} grupos.</p>
{{range .Groups}}  <section>
    <h2>{{.Name}}</h2>
{{if .FeedURL}}    <p><a href="{{.FeedURL}}">Feed do grupo</a></p>
{{end}}    <ul>
{{range .Members}}      <li><a href="{{.SiteURL}}">{{.Name}}</a> — <a href="{{.FeedURL}}">feed</a></li>
{{end}}    </ul>
  </section>
{{end}}</body>
</html>
`))

type indexGroupMember struct {
	Name    string
	SiteURL string
	FeedURL string
}

type indexGroup struct {
	Name    string
	FeedURL string
	Members []indexGroupMember
}

type indexData struct {
	Title       string
	SourceCount int
	GroupCount  int
	Groups      []indexGroup
}

// HTMLIndex renders the static index page: every group with its members and
// feed links, plus aggregate counts. Ungrouped sources appear under "Other",
// which has no merged feed of its own.
func (c Catalog) HTMLIndex() ([]byte, error) {
	data := indexData{
		Title:       c.Title,
		SourceCount: len(c.Sources),
		GroupCount:  len(c.groupKeys()),
	}

	for _, key := range c.groupKeys() {
		group := indexGroup{
			Name:    c.DisplayName(key),
			FeedURL: c.feedURL(GroupFeedFile(key)),
		}
		for _, s := range c.membersOf(key) {
			group.Members = append(group.Members, indexGroupMember{
				Name:    s.Name,
				SiteURL: s.URL,
				FeedURL: c.feedURL(s.FeedFile),
			})
		}
		data.Groups = append(data.Groups, group)
	}

	if rest := c.ungrouped(); len(rest) > 0 {
		other := indexGroup{Name: OtherGroup}
		for _, s := range rest {
			other.Members = append(other.Members, indexGroupMember{
				Name:    s.Name,
				SiteURL: s.URL,
				FeedURL: c.feedURL(s.FeedFile),
			})
		}
		data.Groups = append(data.Groups, other)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return buf.Bytes(), nil
}
