// Package models defines the shared data types exchanged between the
// fetcher, the comparative analysis engine, and the HTTP API.
package models

// Sentiment is the categorical polarity label assigned to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Fallback values used when a scraped article card is missing a field.
const (
	NoSummary   = "No description available"
	NoTimestamp = "No timestamp available"
)

// Article represents one fetched news item. Sentiment is assigned once
// at fetch time and never recomputed; downstream consumers treat the
// article list as read-only.
type Article struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	Timestamp string    `json:"timestamp"`
	Sentiment Sentiment `json:"sentiment"`
	Topics    []string  `json:"topics,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
}
