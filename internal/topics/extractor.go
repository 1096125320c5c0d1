// Package topics derives topic tags and keyword lists from article
// text using named-entity recognition and term-frequency ranking.
package topics

import (
	"log/slog"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/aravindms/newspulse/pkg/utils"
)

// NoTopics is the placeholder returned when nothing can be extracted.
const NoTopics = "No topics identified"

// DefaultTopicCount is the number of term-frequency topics merged with
// the named entities.
const DefaultTopicCount = 3

// entityLabels are the NER categories treated as topics.
var entityLabels = map[string]bool{
	"ORG":     true,
	"GPE":     true,
	"PRODUCT": true,
	"PERSON":  true,
}

// keywordStopwords is the fixed stopword set for title keyword
// extraction. Deliberately small: keyword frequency downstream counts
// everything else.
var keywordStopwords = map[string]bool{
	"the": true, "of": true, "a": true, "and": true, "to": true,
	"in": true, "on": true, "for": true, "with": true, "is": true,
	"at": true, "by": true,
}

// topicStopwords is the broader stopword set applied before ranking
// term-frequency topics.
var topicStopwords = func() map[string]bool {
	words := strings.Fields(`i me my we our you your he him his she her it its
		they them their what which who this that these those am is are was were
		be been being have has had do does did a an the and but if or because
		as until while of at by for with about against between into through
		during before after above below to from up down in out on off over
		under again further then once here there when where why how all any
		both each few more most other some such no nor not only own same so
		than too very can will just should now said says will would could`)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}()

// Extractor derives topics and keywords. It is stateless and safe for
// concurrent use; construct one and inject it where needed.
type Extractor struct{}

// NewExtractor returns a ready Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Topics returns up to len(entities)+n topic tags for text: named
// entities recognized by the pretrained model, unioned with the n most
// frequent non-stopword terms. Order is first-seen; duplicates are
// removed case-insensitively. Empty or unproductive input yields the
// NoTopics placeholder.
func (e *Extractor) Topics(text string, n int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{NoTopics}
	}
	if n <= 0 {
		n = DefaultTopicCount
	}

	var topics []string
	seen := make(map[string]bool)
	add := func(topic string) {
		key := strings.ToLower(topic)
		if topic == "" || seen[key] {
			return
		}
		seen[key] = true
		topics = append(topics, topic)
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		// NER failure degrades to frequency terms only.
		slog.Warn("NER document build failed", "error", err)
	} else {
		for _, ent := range doc.Entities() {
			if entityLabels[ent.Label] {
				add(strings.TrimSpace(ent.Text))
			}
		}
	}

	for _, term := range topTerms(text, n) {
		add(term)
	}

	if len(topics) == 0 {
		return []string{NoTopics}
	}
	return topics
}

// Keywords tokenizes text into lowercase alphanumeric words with the
// fixed stopword set removed. Duplicates are retained so callers can
// accumulate frequencies.
func (e *Extractor) Keywords(text string) []string {
	words := utils.Words(text)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !keywordStopwords[w] {
			kept = append(kept, w)
		}
	}
	return kept
}

// topTerms ranks the non-stopword terms of a single text by frequency
// and returns the top n in rank order. With one document TF-IDF
// degenerates to plain term frequency.
func topTerms(text string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range utils.Words(text) {
		if topicStopwords[w] || len(w) < 2 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	top := utils.TopN(counts, order, n)

	// Re-rank the selected terms by count, ties first-seen.
	terms := make([]string, 0, len(top))
	for _, w := range order {
		if _, ok := top[w]; ok {
			terms = append(terms, w)
		}
	}
	for i := 0; i < len(terms); i++ {
		best := i
		for j := i + 1; j < len(terms); j++ {
			if counts[terms[j]] > counts[terms[best]] {
				best = j
			}
		}
		if best != i {
			w := terms[best]
			copy(terms[i+1:best+1], terms[i:best])
			terms[i] = w
		}
	}
	return terms
}
