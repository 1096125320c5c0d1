package models

// CoverageDifference is a narrated pairwise comparison between two
// articles' focus and sentiment stance.
type CoverageDifference struct {
	Comparison string `json:"Comparison"`
	Impact     string `json:"Impact"`
}

// ArticleTopics lists the topics unique to one article (1-indexed
// position) relative to the rest of the set.
type ArticleTopics struct {
	Article int      `json:"article"`
	Topics  []string `json:"topics"`
}

// TopicOverlap describes topic commonality across an article set:
// topics shared by every article plus the topics each article alone
// contributes. Empty for fewer than two articles.
type TopicOverlap struct {
	CommonTopics []string        `json:"common_topics"`
	UniqueTopics []ArticleTopics `json:"unique_topics"`
}

// Report is the comparative-statistics output over a set of articles.
// It is transient: computed per request and never persisted.
type Report struct {
	SentimentDistribution map[Sentiment]int    `json:"sentiment_distribution"`
	MajoritySentiment     Sentiment            `json:"majority_sentiment"`
	SentimentShifts       []string             `json:"sentiment_shifts"`
	CoverageDifferences   []CoverageDifference `json:"coverage_differences"`
	KeywordFrequency      map[string]int       `json:"keyword_frequency"`
	MostPositiveArticle   string               `json:"most_positive_article"`
	MostNegativeArticle   string               `json:"most_negative_article"`
	TopicOverlap          TopicOverlap         `json:"topic_overlap"`
}

// Tally counts sentiment labels for one bucket of a trend series.
// All three labels are always present, zero-valued when absent.
type Tally struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

// Add increments the counter matching the given label.
func (t *Tally) Add(s Sentiment) {
	switch s {
	case SentimentPositive:
		t.Positive++
	case SentimentNegative:
		t.Negative++
	default:
		t.Neutral++
	}
}
