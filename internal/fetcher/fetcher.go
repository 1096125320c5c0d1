// Package fetcher retrieves company news from external search sources
// and enriches each article with a sentiment label and topic tags.
//
// Two sources are implemented: the Bing News HTML results page
// (scraped with goquery) and the Google News RSS search feed (parsed
// with gofeed). Both honor the same article cap and enrichment rules,
// so callers can swap or combine them freely.
package fetcher

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/aravindms/newspulse/pkg/models"
)

// DefaultMaxArticles caps how many articles a single fetch returns.
const DefaultMaxArticles = 10

// Scorer assigns a sentiment label to text. Satisfied by
// sentiment.Analyzer.
type Scorer interface {
	Score(text string) models.Sentiment
}

// Enricher attaches topics and keywords to articles. Satisfied by
// topics.Extractor.
type Enricher interface {
	Topics(text string, n int) []string
	Keywords(text string) []string
}

// Source fetches the news articles for a company. Implementations
// return (nil, nil) when the source answered but produced no usable
// articles, and a non-nil error only for transport-level failures, so
// callers can tell "no news" from "fetch broke".
type Source interface {
	Name() string
	Fetch(ctx context.Context, company string) ([]models.Article, error)
}

// enrich scores and tags one scraped article in place. The sentiment
// is computed from the summary, matching how readers first meet the
// article; topics come from the summary and keywords from the title.
func enrich(a *models.Article, scorer Scorer, enricher Enricher) {
	a.Sentiment = scorer.Score(a.Summary)
	if enricher == nil {
		return
	}
	summary := a.Summary
	if summary == models.NoSummary {
		summary = ""
	}
	a.Topics = enricher.Topics(summary, 0)
	a.Keywords = enricher.Keywords(a.Title + " " + summary)
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// Fanout queries several sources concurrently and concatenates their
// results in source order, capped at max articles. A source error is
// tolerated while any other source succeeds; the combined fetch fails
// only when every source does.
type Fanout struct {
	sources []Source
	max     int
}

// NewFanout builds a Fanout over the given sources.
func NewFanout(max int, sources ...Source) *Fanout {
	if max <= 0 {
		max = DefaultMaxArticles
	}
	return &Fanout{sources: sources, max: max}
}

// Name returns the combined source name.
func (f *Fanout) Name() string {
	names := make([]string, len(f.sources))
	for i, s := range f.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Fetch implements Source.
func (f *Fanout) Fetch(ctx context.Context, company string) ([]models.Article, error) {
	results := make([][]models.Article, len(f.sources))
	errs := make([]error, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		i, src := i, src
		g.Go(func() error {
			articles, err := src.Fetch(gctx, company)
			results[i] = articles
			errs[i] = err
			return nil // individual failures are examined below
		})
	}
	g.Wait() //nolint:errcheck

	var combined []models.Article
	var firstErr error
	failed := 0
	for i := range f.sources {
		if errs[i] != nil {
			failed++
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		combined = append(combined, results[i]...)
	}

	if failed == len(f.sources) && firstErr != nil {
		return nil, firstErr
	}
	if len(combined) > f.max {
		combined = combined[:f.max]
	}
	return combined, nil
}
