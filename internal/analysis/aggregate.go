// Package analysis implements comparative sentiment aggregation over a
// fetched article list: distribution, majority label, shift detection,
// pairwise coverage narration, keyword frequency, and topic overlap.
//
// Everything here is a pure function of the input list contents and
// order. The list is never mutated and no state survives a call.
package analysis

import (
	"fmt"

	"github.com/aravindms/newspulse/pkg/models"
	"github.com/aravindms/newspulse/pkg/utils"
)

// NoArticle is the extremes placeholder when no article carries the
// corresponding sentiment.
const NoArticle = "None"

// topKeywordLimit caps the keyword-frequency map of a report.
const topKeywordLimit = 5

// Tokenizer produces the keyword tokens of a text. Satisfied by
// topics.Extractor.
type Tokenizer interface {
	Keywords(text string) []string
}

// Engine computes comparative reports. It holds only the injected
// tokenizer and is safe for concurrent use.
type Engine struct {
	tok Tokenizer
}

// NewEngine returns an Engine using tok for title tokenization.
func NewEngine(tok Tokenizer) *Engine {
	return &Engine{tok: tok}
}

// Aggregate builds the comparative report for articles. Empty input is
// a defined case: an empty-state report, never an error.
func (e *Engine) Aggregate(articles []models.Article) models.Report {
	report := models.Report{
		SentimentDistribution: map[models.Sentiment]int{},
		MajoritySentiment:     models.SentimentNeutral,
		SentimentShifts:       []string{},
		CoverageDifferences:   []models.CoverageDifference{},
		KeywordFrequency:      map[string]int{},
		MostPositiveArticle:   NoArticle,
		MostNegativeArticle:   NoArticle,
		TopicOverlap:          emptyOverlap(),
	}
	if len(articles) == 0 {
		return report
	}

	report.SentimentDistribution, report.MajoritySentiment = distribution(articles)
	report.SentimentShifts = shifts(articles)
	report.CoverageDifferences = coverageDifferences(articles)
	report.KeywordFrequency = e.keywordFrequency(articles)
	report.MostPositiveArticle = firstWithSentiment(articles, models.SentimentPositive)
	report.MostNegativeArticle = firstWithSentiment(articles, models.SentimentNegative)
	report.TopicOverlap = Overlap(articles)
	return report
}

// distribution counts the labels present and picks the majority:
// argmax over counts, ties resolved by first occurrence in the input.
func distribution(articles []models.Article) (map[models.Sentiment]int, models.Sentiment) {
	counts := make(map[models.Sentiment]int)
	var order []models.Sentiment
	for _, a := range articles {
		if counts[a.Sentiment] == 0 {
			order = append(order, a.Sentiment)
		}
		counts[a.Sentiment]++
	}

	majority := models.SentimentNeutral
	best := 0
	for _, label := range order {
		if counts[label] > best {
			best = counts[label]
			majority = label
		}
	}
	return counts, majority
}

// shifts narrates every adjacent pair whose sentiment differs, in
// position order.
func shifts(articles []models.Article) []string {
	out := []string{}
	for i := 0; i+1 < len(articles); i++ {
		cur, next := articles[i], articles[i+1]
		if cur.Sentiment == next.Sentiment {
			continue
		}
		out = append(out, fmt.Sprintf("Shift from %s in '%s' to %s in '%s'.",
			cur.Sentiment, cur.Title, next.Sentiment, next.Title))
	}
	return out
}

// coverageDifferences narrates every unordered article pair (1-indexed,
// combinations order), O(n²) entries.
func coverageDifferences(articles []models.Article) []models.CoverageDifference {
	out := []models.CoverageDifference{}
	for i := 0; i < len(articles); i++ {
		for j := i + 1; j < len(articles); j++ {
			first, second := articles[i], articles[j]
			out = append(out, models.CoverageDifference{
				Comparison: fmt.Sprintf("Article %d discusses \"%s\", while Article %d focuses on \"%s\".",
					i+1, first.Title, j+1, second.Title),
				Impact: fmt.Sprintf("Article %d presents a %s view, while Article %d takes a %s stance.",
					i+1, first.Sentiment, j+1, second.Sentiment),
			})
		}
	}
	return out
}

// keywordFrequency accumulates title keywords across all articles and
// keeps the top entries, ties broken by first occurrence.
func (e *Engine) keywordFrequency(articles []models.Article) map[string]int {
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		for _, kw := range e.tok.Keywords(a.Title) {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	return utils.TopN(counts, order, topKeywordLimit)
}

// firstWithSentiment returns the title of the first article carrying
// the label, or the NoArticle placeholder.
func firstWithSentiment(articles []models.Article, label models.Sentiment) string {
	for _, a := range articles {
		if a.Sentiment == label {
			return a.Title
		}
	}
	return NoArticle
}
