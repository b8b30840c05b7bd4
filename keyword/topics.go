package keyword

import (
	"fmt"
	"math"
	"strings"

	"github.com/seoforge/seoforge/model"
)

const (
	maxTopics       = 6
	topicScoreDecay = 0.96
	topicReason     = "Derived from a high-relevance keyword in your content"
)

// headlineTemplates cycle by topic index so that six topics never share a
// pattern.
var headlineTemplates = []string{
	"The Complete Guide to %s",
	"How to Get Started with %s",
	"10 Essential Tips for %s",
	"Common %s Mistakes to Avoid",
	"%s: Best Practices That Actually Work",
	"What You Need to Know About %s",
}

// deriveTopics turns the top keyword candidates into templated article
// headlines. Near-duplicate keywords (substring containment or heavy token
// overlap) collapse into a single topic so six topics cover six distinct
// themes. Scores decay ~4% per rank position.
func deriveTopics(keywords []model.KeywordCandidate) []model.TopicCandidate {
	topics := []model.TopicCandidate{}
	seeds := []string{}
	for _, kw := range keywords {
		if len(topics) == maxTopics {
			break
		}
		if isNearDuplicate(kw.Keyword, seeds) {
			continue
		}
		seeds = append(seeds, kw.Keyword)

		idx := len(topics)
		topics = append(topics, model.TopicCandidate{
			Title:   fmt.Sprintf(headlineTemplates[idx%len(headlineTemplates)], titleCase(kw.Keyword)),
			Score:   clampScore(kw.Score * math.Pow(topicScoreDecay, float64(idx))),
			Reason:  topicReason,
			Keyword: kw.Keyword,
		})
	}
	return topics
}

// isNearDuplicate reports whether the keyword substantially overlaps any of
// the already-picked seeds, either by substring containment or by Jaccard
// token similarity of 0.5 or more.
func isNearDuplicate(keyword string, seeds []string) bool {
	for _, seed := range seeds {
		if strings.Contains(seed, keyword) || strings.Contains(keyword, seed) {
			return true
		}
		if jaccard(strings.Fields(keyword), strings.Fields(seed)) >= 0.5 {
			return true
		}
	}
	return false
}

func jaccard(a []string, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := map[string]bool{}
	for _, w := range a {
		set[w] = true
	}
	intersection := 0
	union := len(set)
	seen := map[string]bool{}
	for _, w := range b {
		if seen[w] {
			continue
		}
		seen[w] = true
		if set[w] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.Title(w)
	}
	return strings.Join(words, " ")
}
