package seo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichNormalizesSnakeCase(t *testing.T) {
	fake := remote.NewFakeFunctionClient()
	fake.Responses[FetchSeoDataFunction] = json.RawMessage(
		`{"data": [{"keyword": "running shoes", "search_volume": 1200, "keyword_difficulty": 40, "cpc": 1.5, "competition": 0.3, "intent": "commercial", "monthly_trend": [10, 20, 30]}]}`)

	stats := NewClient(fake).Enrich(context.Background(), []string{"running shoes"})
	require.NotNil(t, stats)
	require.Contains(t, stats, "running shoes")
	assert.Equal(t, 1200, stats["running shoes"].SearchVolume)
	assert.Equal(t, 40, stats["running shoes"].KeywordDifficulty)
	assert.Equal(t, 1.5, stats["running shoes"].CPC)
	assert.Equal(t, model.IntentCommercial, stats["running shoes"].Intent)
	assert.Equal(t, []int{10, 20, 30}, stats["running shoes"].MonthlyTrend)
}

func TestEnrichNormalizesCamelCase(t *testing.T) {
	fake := remote.NewFakeFunctionClient()
	fake.Responses[FetchSeoDataFunction] = json.RawMessage(
		`{"data": [{"keyword": "running shoes", "searchVolume": 1200, "keywordDifficulty": 40}]}`)

	stats := NewClient(fake).Enrich(context.Background(), []string{"running shoes"})
	require.NotNil(t, stats)
	assert.Equal(t, 1200, stats["running shoes"].SearchVolume)
	assert.Equal(t, 40, stats["running shoes"].KeywordDifficulty)
}

func TestEnrichReturnsNilOnError(t *testing.T) {
	fake := remote.NewFakeFunctionClient()
	fake.Errors[FetchSeoDataFunction] = errors.New("metrics service down")

	stats := NewClient(fake).Enrich(context.Background(), []string{"running shoes"})
	assert.Nil(t, stats)
}

func TestEnrichBatchesSingleCall(t *testing.T) {
	fake := remote.NewFakeFunctionClient()
	fake.Responses[FetchSeoDataFunction] = json.RawMessage(`{"data": []}`)

	NewClient(fake).Enrich(context.Background(), []string{"one", "two", "three"})
	assert.Equal(t, 1, fake.CallCount(FetchSeoDataFunction))
}

func TestApplyStats(t *testing.T) {
	keywords := []model.KeywordCandidate{
		{Keyword: "running shoes", Score: 0.8},
		{Keyword: "trail racing", Score: 0.6},
	}
	ApplyStats(keywords, map[string]model.SEOStats{
		"running shoes": {SearchVolume: 1200, KeywordDifficulty: 40},
	})
	require.NotNil(t, keywords[0].SEOStats)
	assert.Equal(t, 1200, keywords[0].SEOStats.SearchVolume)
	assert.Nil(t, keywords[1].SEOStats)

	// nil stats map leaves everything untouched
	ApplyStats(keywords, nil)
	require.NotNil(t, keywords[0].SEOStats)
}

func TestRankKeywordsByVolumeTimesScore(t *testing.T) {
	keywords := []model.KeywordCandidate{
		{Keyword: "low", Score: 0.9, SEOStats: &model.SEOStats{SearchVolume: 10}},
		{Keyword: "high", Score: 0.5, SEOStats: &model.SEOStats{SearchVolume: 10000}},
		{Keyword: "nostats", Score: 1.0},
	}
	RankKeywords(keywords)
	assert.Equal(t, "high", keywords[0].Keyword)
	assert.Equal(t, "low", keywords[1].Keyword)
	assert.Equal(t, "nostats", keywords[2].Keyword)
}

func TestRankTopicsByOpportunity(t *testing.T) {
	topics := []model.TopicCandidate{
		{Title: "hard", SEOStats: &model.SEOStats{SearchVolume: 1000, KeywordDifficulty: 90}},
		{Title: "easy", SEOStats: &model.SEOStats{SearchVolume: 800, KeywordDifficulty: 10}},
	}
	RankTopics(topics)
	// 800*0.9=720 beats 1000*0.1=100
	assert.Equal(t, "easy", topics[0].Title)
}
