// Package sentiment assigns polarity labels to article text using the
// VADER lexicon model.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/aravindms/newspulse/pkg/models"
)

// Compound-score thresholds for the three-way label split.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\(https?://[^\s)]+\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Analyzer scores text with a pretrained VADER lexicon. Construct one
// with NewAnalyzer and share it; scoring is read-only and deterministic
// for a fixed lexicon.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer loads the VADER lexicon and returns a ready analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the sentiment label for text. Empty input is Neutral.
func (a *Analyzer) Score(text string) models.Sentiment {
	cleaned := stripLinks(text)
	if strings.TrimSpace(cleaned) == "" {
		return models.SentimentNeutral
	}

	compound := a.vader.PolarityScores(cleaned).Compound
	switch {
	case compound >= positiveThreshold:
		return models.SentimentPositive
	case compound <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// stripLinks removes markdown link syntax (keeping the anchor text) and
// bare URLs so link noise does not skew the lexicon scores.
func stripLinks(text string) string {
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	return urlPattern.ReplaceAllString(text, "")
}
