// Package catalog emits the subscription artifacts (OPML tree and HTML
// index) from the configured source list. It never looks at fetch results:
// the catalog is the same whether a run succeeded or not.
package catalog

import (
	"sort"
	"strings"
	"unicode"
)

// Source is the catalog view of one configured origin.
type Source struct {
	ID       string
	Name     string
	URL      string
	Group    string
	FeedFile string
}

// Catalog derives OPML and HTML from the static source list.
type Catalog struct {
	Title      string
	BaseURL    string
	GroupNames map[string]string
	Sources    []Source
}

// OtherGroup is the bucket that collects sources configured without a group.
const OtherGroup = "Other"

// GroupFeedFile is the output filename convention for a group's merged feed.
func GroupFeedFile(key string) string {
	return key + ".xml"
}

func (c Catalog) feedURL(file string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + file
}

// DisplayName resolves a group key through the configured lookup table,
// falling back to the capitalized key.
func (c Catalog) DisplayName(key string) string {
	if name, ok := c.GroupNames[key]; ok && name != "" {
		return name
	}
	if key == "" {
		return key
	}
	runes := []rune(strings.ToLower(key))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// groupKeys returns the group keys present in the source list, sorted, so
// emitted artifacts are stable across runs.
func (c Catalog) groupKeys() []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, s := range c.Sources {
		if s.Group == "" {
			continue
		}
		if _, ok := seen[s.Group]; !ok {
			seen[s.Group] = struct{}{}
			keys = append(keys, s.Group)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c Catalog) membersOf(group string) []Source {
	var members []Source
	for _, s := range c.Sources {
		if s.Group == group {
			members = append(members, s)
		}
	}
	return members
}

func (c Catalog) ungrouped() []Source {
	return c.membersOf("")
}
