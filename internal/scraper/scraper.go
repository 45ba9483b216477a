package scraper

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"rssdevalor/internal/domain"
)

// ErrNoArticle is returned by an Extractor when the latest-article anchor is
// absent from the document. It means "nothing to publish", not a failure.
var ErrNoArticle = errors.New("no article found in document")

// ErrUnknownStrategy is returned by the registry for a strategy key that no
// extractor was registered under.
var ErrUnknownStrategy = errors.New("extractor is not registered")

// Document is a fetched page plus the URL the response actually resolved to
// after redirects. Extractors that sit behind auth walls inspect ResolvedURL.
type Document struct {
	Root        *goquery.Document
	ResolvedURL string
}

// Extractor captures a single publisher strategy: locate the latest-article
// anchor in a document and pull a normalized Article out of it.
type Extractor interface {
	Name() string
	Extract(doc *Document) (domain.Article, error)
}

// Registry keeps a mapping from strategy keys to their extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(e Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[e.Name()] = e
}

// Resolve returns the extractor registered under key.
func (r *Registry) Resolve(key string) (Extractor, error) {
	if e, ok := r.extractors[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%q: %w", key, ErrUnknownStrategy)
}
