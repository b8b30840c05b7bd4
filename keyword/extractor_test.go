package keyword

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyInput(t *testing.T) {
	res := Extract("", "")
	require.NotNil(t, res.Keywords)
	require.NotNil(t, res.Topics)
	require.Empty(t, res.Keywords)
	require.Empty(t, res.Topics)
}

func TestExtractBoundsAndClamping(t *testing.T) {
	text := strings.Repeat("content marketing strategy drives organic growth for small business websites. ", 30)
	res := Extract(text, "Content Marketing Strategy")

	require.LessOrEqual(t, len(res.Keywords), MaxKeywords)
	for _, kw := range res.Keywords {
		assert.GreaterOrEqual(t, kw.Score, 0.0, "keyword %q", kw.Keyword)
		assert.LessOrEqual(t, kw.Score, 1.0, "keyword %q", kw.Keyword)
	}
	require.LessOrEqual(t, len(res.Topics), 6)
	for _, topic := range res.Topics {
		assert.GreaterOrEqual(t, topic.Score, 0.0)
		assert.LessOrEqual(t, topic.Score, 1.0)
		assert.NotEmpty(t, topic.Reason)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Running shoes absorb shock on rocky trails. Trail racing shoes need grip and durable soles for long runs."
	first := Extract(text, "Best Running Shoes for Trail Racing")
	second := Extract(text, "Best Running Shoes for Trail Racing")
	require.Equal(t, first, second)
}

func TestExtractTitleBoostedPhrasesWin(t *testing.T) {
	text := "Good running shoes absorb shock on rocky trails. Trail racing shoes need grip. " +
		"Shoes with cushioning help runners, but trail racing rewards light running shoes."
	res := Extract(text, "Best Running Shoes for Trail Racing")
	require.NotEmpty(t, res.Keywords)

	phraseScore := -1.0
	for _, kw := range res.Keywords {
		if kw.Keyword == "running shoes" || kw.Keyword == "trail racing" {
			if kw.Score > phraseScore {
				phraseScore = kw.Score
			}
			assert.Equal(t, "title", kw.Source)
		}
	}
	require.Greater(t, phraseScore, 0.0, "expected a title phrase among candidates")

	for _, kw := range res.Keywords {
		if kw.Keyword == "shoes" {
			assert.Less(t, kw.Score, phraseScore, "bare unigram must not outrank boosted phrase")
		}
	}
	// top keyword is one of the boosted title phrases
	top := res.Keywords[0].Keyword
	assert.Contains(t, []string{"running shoes", "trail racing", "running shoes trail", "shoes trail racing"}, top)
}

func TestExtractDropsNoiseTokens(t *testing.T) {
	res := Extract("We 42 ab the and for 100 2023 a1 growth growth growth", "")
	for _, kw := range res.Keywords {
		assert.NotContains(t, []string{"the", "and", "for", "42", "100", "2023", "ab", "we"}, kw.Keyword)
	}
}

func TestDeriveTopicsCyclesTemplatesAndDecays(t *testing.T) {
	text := "Solar panels cut energy bills. Battery storage matters. Inverter sizing, panel angle, " +
		"grid export limits and installer choice all shape solar economics for homeowners in cloudy climates."
	res := Extract(text, "Solar Panels for Homeowners")
	require.NotEmpty(t, res.Topics)

	seen := map[string]bool{}
	for i, topic := range res.Topics {
		require.False(t, seen[topic.Title], "duplicate topic headline %q", topic.Title)
		seen[topic.Title] = true
		if i > 0 {
			assert.LessOrEqual(t, topic.Score, res.Topics[0].Score)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world-wide 42", normalize("  Hello,   World-wide!  42 "))
}

func TestSelectDiverseSkipsCoveredHeadWords(t *testing.T) {
	// "shoes" alone must be skipped once "running shoes" is selected
	text := "running shoes running shoes running shoes shoes shoes trails"
	res := Extract(text, "")
	idxPhrase, idxSingle := -1, -1
	for i, kw := range res.Keywords {
		if kw.Keyword == "running shoes" {
			idxPhrase = i
		}
		if kw.Keyword == "shoes" {
			idxSingle = i
		}
	}
	require.NotEqual(t, -1, idxPhrase)
	assert.Equal(t, -1, idxSingle, "covered unigram should be dropped by the diversity pass")
}
