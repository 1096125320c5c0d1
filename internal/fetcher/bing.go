package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aravindms/newspulse/internal/infra"
	"github.com/aravindms/newspulse/pkg/models"
)

// DefaultBingBaseURL is the production Bing News endpoint. Tests point
// BaseURL at an httptest server instead.
const DefaultBingBaseURL = "https://www.bing.com"

// defaultFetchTimeout bounds the single outbound search request.
const defaultFetchTimeout = 10 * time.Second

// BingConfig tunes a BingSource. The zero value uses production
// defaults.
type BingConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxArticles int
}

// BingSource scrapes the Bing News search results page. Article order
// follows document order, i.e. the ranking presented by the source.
type BingSource struct {
	baseURL  string
	max      int
	client   *http.Client
	limiter  *infra.RateLimiter
	scorer   Scorer
	enricher Enricher
}

// NewBingSource builds a Bing scraper using scorer for sentiment and
// enricher (optional) for topic/keyword tagging.
func NewBingSource(cfg BingConfig, scorer Scorer, enricher Enricher) *BingSource {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBingBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	max := cfg.MaxArticles
	if max <= 0 {
		max = DefaultMaxArticles
	}
	return &BingSource{
		baseURL:  strings.TrimRight(base, "/"),
		max:      max,
		client:   &http.Client{Timeout: timeout},
		limiter:  infra.NewRateLimiter(2, time.Second),
		scorer:   scorer,
		enricher: enricher,
	}
}

// Name returns the source name.
func (b *BingSource) Name() string { return "Bing News" }

// Fetch retrieves up to the configured number of article cards for the
// company. Transport and HTTP failures are logged and returned;
// callers degrade them to an empty result at the boundary.
func (b *BingSource) Fetch(ctx context.Context, company string) ([]models.Article, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/news/search?q=%s", b.baseURL, url.QueryEscape(company))
	body, err := infra.Get(ctx, b.client, searchURL, nil)
	if err != nil {
		slog.Error("news fetch failed", "company", company, "error", err)
		return nil, fmt.Errorf("fetch news for %q: %w", company, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		slog.Error("news parse failed", "company", company, "error", err)
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	var articles []models.Article
	doc.Find(".news-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(articles) >= b.max {
			return false
		}

		titleTag := card.Find("a.title").First()
		title := strings.TrimSpace(titleTag.Text())
		if title == "" {
			// Cards without a title are navigation chrome; skip.
			return true
		}

		link, _ := titleTag.Attr("href")
		summary := strings.TrimSpace(card.Find(".snippet").First().Text())
		if summary == "" {
			summary = models.NoSummary
		}
		timestamp := strings.TrimSpace(card.Find(".source").First().Text())
		if timestamp == "" {
			timestamp = models.NoTimestamp
		}

		a := models.Article{
			Title:     title,
			Summary:   summary,
			URL:       link,
			Timestamp: timestamp,
		}
		enrich(&a, b.scorer, b.enricher)
		articles = append(articles, a)
		return true
	})

	slog.Debug("news fetched", "company", company, "articles", len(articles))
	return articles, nil
}
