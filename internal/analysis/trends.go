package analysis

import (
	"github.com/aravindms/newspulse/pkg/models"
	"github.com/aravindms/newspulse/pkg/utils"
)

// Trends buckets article sentiments by the date prefix of their raw
// timestamp. Non-date timestamps ("3h ago") form their own buckets,
// matching how the scraped source labels recency.
func Trends(articles []models.Article) map[string]models.Tally {
	trends := make(map[string]models.Tally)
	for _, a := range articles {
		date := utils.DatePrefix(a.Timestamp)
		tally := trends[date]
		tally.Add(a.Sentiment)
		trends[date] = tally
	}
	return trends
}

// TopKeywords ranks the keywords attached to the articles at fetch
// time and returns the n most frequent, ties broken by first seen.
func TopKeywords(articles []models.Article, n int) map[string]int {
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		for _, kw := range a.Keywords {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	return utils.TopN(counts, order, n)
}
