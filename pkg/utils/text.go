// Package utils provides small text helpers shared across packages.
package utils

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// CleanText collapses runs of whitespace (including newlines) into
// single spaces and trims the result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// DatePrefix extracts the date portion of a raw timestamp string.
// ISO-style timestamps yield their YYYY-MM-DD prefix; anything shorter
// is returned unchanged.
func DatePrefix(timestamp string) string {
	if i := strings.IndexByte(timestamp, 'T'); i > 0 {
		return timestamp[:i]
	}
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}

// Words tokenizes text into lowercase alphanumeric words, dropping
// punctuation. Duplicates are retained so callers can count frequency.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// TopWords returns the n most frequent words of text, ties broken by
// first occurrence.
func TopWords(text string, n int) map[string]int {
	counts := make(map[string]int)
	var order []string
	for _, w := range Words(text) {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	top := TopN(counts, order, n)
	return top
}

// TopN selects the n highest counts from counts, with ties broken by
// the position of the key in order (first seen wins). The order slice
// must contain every key of counts exactly once.
func TopN(counts map[string]int, order []string, n int) map[string]int {
	if n <= 0 || len(counts) == 0 {
		return map[string]int{}
	}

	// Stable selection sort over the first-seen ordering: cheap for the
	// small vocabularies produced by article titles.
	ranked := make([]string, len(order))
	copy(ranked, order)
	for i := 0; i < len(ranked); i++ {
		best := i
		for j := i + 1; j < len(ranked); j++ {
			if counts[ranked[j]] > counts[ranked[best]] {
				best = j
			}
		}
		if best != i {
			w := ranked[best]
			copy(ranked[i+1:best+1], ranked[i:best])
			ranked[i] = w
		}
	}

	if n > len(ranked) {
		n = len(ranked)
	}
	top := make(map[string]int, n)
	for _, w := range ranked[:n] {
		top[w] = counts[w]
	}
	return top
}
