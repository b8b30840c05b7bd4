package seo

import (
	"sort"

	"github.com/seoforge/seoforge/model"
)

// RankKeywords orders candidates by searchVolume * relevanceScore descending.
// Candidates without stats sink to the bottom, keeping their relative order.
func RankKeywords(keywords []model.KeywordCandidate) {
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywordOpportunity(keywords[i]) > keywordOpportunity(keywords[j])
	})
}

// RankTopics orders topics by searchVolume * (1 - difficulty/100) descending,
// favoring high-volume low-competition themes.
func RankTopics(topics []model.TopicCandidate) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topicOpportunity(topics[i]) > topicOpportunity(topics[j])
	})
}

func keywordOpportunity(kw model.KeywordCandidate) float64 {
	if kw.SEOStats == nil {
		return 0
	}
	return float64(kw.SEOStats.SearchVolume) * kw.Score
}

func topicOpportunity(topic model.TopicCandidate) float64 {
	if topic.SEOStats == nil {
		return 0
	}
	return float64(topic.SEOStats.SearchVolume) * (1 - float64(topic.SEOStats.KeywordDifficulty)/100)
}
