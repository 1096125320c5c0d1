package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/aravindms/newspulse/pkg/models"
)

// DefaultRSSBaseURL is the Google News RSS search endpoint.
const DefaultRSSBaseURL = "https://news.google.com"

// RSSConfig tunes an RSSSource. The zero value uses production
// defaults.
type RSSConfig struct {
	BaseURL     string
	MaxArticles int
}

// RSSSource fetches company news from the Google News RSS search feed.
// It is the fallback when HTML scraping is blocked: feeds are stable
// markup and carry real publication timestamps.
type RSSSource struct {
	baseURL  string
	max      int
	parser   *gofeed.Parser
	scorer   Scorer
	enricher Enricher
}

// NewRSSSource builds an RSS news source.
func NewRSSSource(cfg RSSConfig, scorer Scorer, enricher Enricher) *RSSSource {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultRSSBaseURL
	}
	max := cfg.MaxArticles
	if max <= 0 {
		max = DefaultMaxArticles
	}
	return &RSSSource{
		baseURL:  strings.TrimRight(base, "/"),
		max:      max,
		parser:   gofeed.NewParser(),
		scorer:   scorer,
		enricher: enricher,
	}
}

// Name returns the source name.
func (r *RSSSource) Name() string { return "Google News RSS" }

// Fetch retrieves up to the configured number of feed items for the
// company.
func (r *RSSSource) Fetch(ctx context.Context, company string) ([]models.Article, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s", r.baseURL, url.QueryEscape(company))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		slog.Error("rss fetch failed", "company", company, "error", err)
		return nil, fmt.Errorf("fetch RSS for %q: %w", company, err)
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if len(articles) >= r.max {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		summary := cleanHTML(item.Description)
		if summary == "" {
			summary = models.NoSummary
		}
		timestamp := strings.TrimSpace(item.Published)
		if timestamp == "" && item.PublishedParsed != nil {
			timestamp = item.PublishedParsed.Format("2006-01-02T15:04:05Z07:00")
		}
		if timestamp == "" {
			timestamp = models.NoTimestamp
		}

		a := models.Article{
			Title:     title,
			Summary:   summary,
			URL:       item.Link,
			Timestamp: timestamp,
		}
		enrich(&a, r.scorer, r.enricher)
		articles = append(articles, a)
	}

	slog.Debug("rss fetched", "company", company, "articles", len(articles))
	return articles, nil
}
