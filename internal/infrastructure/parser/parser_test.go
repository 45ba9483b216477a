package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rssdevalor/internal/dates"
	"rssdevalor/internal/scraper"
)

var testNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

func testNormalizer(t *testing.T, tz string) *dates.Normalizer {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load location %s: %v", tz, err)
	}
	return dates.NewNormalizer(loc, nil).WithClock(func() time.Time { return testNow })
}

func document(t *testing.T, html, resolvedURL string) *scraper.Document {
	t.Helper()
	root, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return &scraper.Document{Root: root, ResolvedURL: resolvedURL}
}

func TestValorExtract(t *testing.T) {
	t.Parallel()

	html := `
	<div class="bastian-feed-item">
	  <a href="https://valor.globo.com/coluna/artigo-novo.ghtml">
	    <h2 class="feed-post-link">Juros e inflação</h2>
	  </a>
	  <span class="feed-post-datetime">Há 2 horas</span>
	  <span class="feed-post-metadata-section">Míriam Leitão</span>
	  <p class="feed-post-body-resumo">Resumo do artigo.</p>
	</div>`

	e := NewValorExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, "https://valor.globo.com/coluna/"))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Title != "Juros e inflação" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	if article.Link != "https://valor.globo.com/coluna/artigo-novo.ghtml" {
		t.Fatalf("unexpected link: %q", article.Link)
	}
	if article.Author != "Míriam Leitão" {
		t.Fatalf("unexpected author: %q", article.Author)
	}
	if article.Summary != "Resumo do artigo." {
		t.Fatalf("unexpected summary: %q", article.Summary)
	}
	if article.PublishedAt.IsZero() {
		t.Fatal("publish date is zero")
	}
}

func TestValorExtractAnchorMissing(t *testing.T) {
	t.Parallel()

	e := NewValorExtractor(testNormalizer(t, "America/Sao_Paulo"))
	_, err := e.Extract(document(t, `<div class="unrelated"></div>`, ""))
	if !errors.Is(err, scraper.ErrNoArticle) {
		t.Fatalf("expected ErrNoArticle, got %v", err)
	}
}

func TestValorExtractDefaults(t *testing.T) {
	t.Parallel()

	html := `
	<div class="bastian-feed-item">
	  <a href="https://valor.globo.com/x.ghtml"></a>
	</div>`

	e := NewValorExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, ""))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Title != "No title found" {
		t.Fatalf("unexpected default title: %q", article.Title)
	}
	if article.Author != "Autor Desconhecido" {
		t.Fatalf("unexpected default author: %q", article.Author)
	}
	if article.Summary != "" {
		t.Fatalf("expected empty summary, got %q", article.Summary)
	}
}

func TestWashingtonPostExtract(t *testing.T) {
	t.Parallel()

	html := `
	<div data-feature-id="homepage/story">
	  <h3 data-qa="card-title">Election outlook</h3>
	  <a data-pb-local-content-field="web_headline" href="https://www.washingtonpost.com/opinions/story"></a>
	  <p class="font-size-blurb">A short blurb.</p>
	  <span class="wpds-c-iVfWzS"><a>Jane Doe</a><a>John Roe</a></span>
	  <span data-testid="timestamp">June 14, 2024</span>
	</div>`

	e := NewWashingtonPostExtractor(testNormalizer(t, "US/Eastern"))
	article, err := e.Extract(document(t, html, "https://www.washingtonpost.com/opinions/"))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Author != "Jane Doe, John Roe" {
		t.Fatalf("unexpected author: %q", article.Author)
	}
	if article.PublishedAt.Month() != time.June || article.PublishedAt.Day() != 14 {
		t.Fatalf("unexpected date: %v", article.PublishedAt)
	}
}

func TestWashingtonPostAuthWall(t *testing.T) {
	t.Parallel()

	html := `<div data-feature-id="homepage/story"><a data-pb-local-content-field="web_headline" href="https://x"></a></div>`
	e := NewWashingtonPostExtractor(testNormalizer(t, "US/Eastern"))

	for _, resolved := range []string{
		"https://www.washingtonpost.com/subscribe/signup/",
		"https://www.washingtonpost.com/subscriptions/signin/",
	} {
		_, err := e.Extract(document(t, html, resolved))
		if !errors.Is(err, scraper.ErrNoArticle) {
			t.Fatalf("resolved %s: expected ErrNoArticle, got %v", resolved, err)
		}
	}
}

func TestFolhaExtract(t *testing.T) {
	t.Parallel()

	html := `
	<div data-qa="kicker">Celso Rocha de Barros</div>
	<div class="c-headline c-headline--opinion">
	  <h2 class="c-headline__title">Coluna da semana</h2>
	  <a class="c-headline__url" href="https://www1.folha.uol.com.br/colunas/x.shtml"></a>
	  <time class="c-headline__dateline" datetime="2024-06-14 08:00:00">14.jun.2024</time>
	  <p class="c-headline__standfirst">Linha fina.</p>
	</div>`

	e := NewFolhaExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, ""))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Author != "Celso Rocha de Barros" {
		t.Fatalf("unexpected author: %q", article.Author)
	}
	if article.PublishedAt.Hour() != 8 {
		t.Fatalf("unexpected hour: %d", article.PublishedAt.Hour())
	}
	if article.Summary != "Linha fina." {
		t.Fatalf("unexpected summary: %q", article.Summary)
	}
}

func TestEstadaoExtract(t *testing.T) {
	t.Parallel()

	html := `
	<div class="manchete-dia-a-dia-block-container">
	  <div class="chapeu"><span>Eliane Cantanhêde</span></div>
	  <h2 class="headline">Análise do dia</h2>
	  <a href="https://www.estadao.com.br/politica/analise"></a>
	  <p class="subheadline">Subtítulo.</p>
	</div>
	<div class="noticias-mais-recenter--item">
	  <span class="date">Por 14/06/2024, 18h45</span>
	</div>`

	e := NewEstadaoExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, ""))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.PublishedAt.Hour() != 18 || article.PublishedAt.Minute() != 45 {
		t.Fatalf("unexpected time: %v", article.PublishedAt)
	}
	if article.Author != "Eliane Cantanhêde" {
		t.Fatalf("unexpected author: %q", article.Author)
	}
}

func TestEstadaoExtractWithoutLatestBlock(t *testing.T) {
	t.Parallel()

	html := `
	<div class="manchete-dia-a-dia-block-container">
	  <h2 class="headline">Sem data</h2>
	  <a href="https://www.estadao.com.br/x"></a>
	</div>`

	e := NewEstadaoExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, ""))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if article.PublishedAt.IsZero() {
		t.Fatal("expected fallback date, got zero")
	}
}

func TestUOLExtract(t *testing.T) {
	t.Parallel()

	html := `
	<div class="results-index">
	  <div class="thumbnails-item">
	    <a class="thumb-link" href="https://noticias.uol.com.br/colunas/post"></a>
	    <h3 class="thumb-title">Post da coluna</h3>
	    <time class="thumb-date">28.ago.2024</time>
	    <p class="thumb-author">Josias de Souza</p>
	    <p class="thumb-description">Descrição.</p>
	  </div>
	</div>`

	e := NewUOLExtractor(testNormalizer(t, "America/Sao_Paulo"))
	article, err := e.Extract(document(t, html, ""))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.PublishedAt.Month() != time.August || article.PublishedAt.Day() != 28 {
		t.Fatalf("unexpected date: %v", article.PublishedAt)
	}
}

func TestExtractorsRejectMissingLink(t *testing.T) {
	t.Parallel()

	// Anchors exist but carry no link: identity is the link, so there is no
	// article to publish.
	cases := []struct {
		name string
		ext  scraper.Extractor
		html string
	}{
		{"valor", NewValorExtractor(testNormalizer(t, "America/Sao_Paulo")),
			`<div class="bastian-feed-item"><h2 class="feed-post-link">T</h2></div>`},
		{"folha", NewFolhaExtractor(testNormalizer(t, "America/Sao_Paulo")),
			`<div class="c-headline c-headline--opinion"><h2 class="c-headline__title">T</h2></div>`},
		{"uol", NewUOLExtractor(testNormalizer(t, "America/Sao_Paulo")),
			`<div class="results-index"><div class="thumbnails-item"><h3 class="thumb-title">T</h3></div></div>`},
	}

	for _, tc := range cases {
		_, err := tc.ext.Extract(document(t, tc.html, ""))
		if !errors.Is(err, scraper.ErrNoArticle) {
			t.Fatalf("%s: expected ErrNoArticle, got %v", tc.name, err)
		}
	}
}
