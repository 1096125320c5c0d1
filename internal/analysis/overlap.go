package analysis

import (
	"github.com/aravindms/newspulse/internal/topics"
	"github.com/aravindms/newspulse/pkg/models"
)

// Overlap computes topic commonality across any number of articles:
// the topics present in every article, and per article the topics no
// other article mentions. Fewer than two articles yield the empty
// overlap. The NoTopics placeholder never participates.
func Overlap(articles []models.Article) models.TopicOverlap {
	if len(articles) < 2 {
		return emptyOverlap()
	}

	sets := make([]map[string]bool, len(articles))
	for i, a := range articles {
		set := make(map[string]bool, len(a.Topics))
		for _, topic := range a.Topics {
			if topic != topics.NoTopics {
				set[topic] = true
			}
		}
		sets[i] = set
	}

	common := []string{}
	for _, topic := range articles[0].Topics {
		if topic == topics.NoTopics {
			continue
		}
		inAll := true
		for _, set := range sets[1:] {
			if !set[topic] {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, topic)
		}
	}

	unique := make([]models.ArticleTopics, 0, len(articles))
	for i, a := range articles {
		own := []string{}
		for _, topic := range a.Topics {
			if topic == topics.NoTopics {
				continue
			}
			elsewhere := false
			for j, set := range sets {
				if j != i && set[topic] {
					elsewhere = true
					break
				}
			}
			if !elsewhere {
				own = append(own, topic)
			}
		}
		unique = append(unique, models.ArticleTopics{Article: i + 1, Topics: own})
	}

	return models.TopicOverlap{CommonTopics: common, UniqueTopics: unique}
}

func emptyOverlap() models.TopicOverlap {
	return models.TopicOverlap{
		CommonTopics: []string{},
		UniqueTopics: []models.ArticleTopics{},
	}
}
