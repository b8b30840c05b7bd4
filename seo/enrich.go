// Package seo fetches external keyword market metrics and folds them into
// extracted candidates. Enrichment is best-effort end to end: any failure
// yields nil stats and the pipeline continues without them.
package seo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/remote"
	"github.com/seoforge/seoforge/utils"
	Logger "github.com/seoforge/seoforge/utils/log"
)

const (
	FetchSeoDataFunction = "fetch-seo-data"

	statsCacheTTL = 24 * time.Hour
)

type Client struct {
	invoker remote.Invoker
	// optional stats cache, nil disables caching
	cache *utils.RedisClient
}

func NewClient(invoker remote.Invoker) *Client {
	return &Client{invoker: invoker}
}

func NewClientWithCache(invoker remote.Invoker, cache *utils.RedisClient) *Client {
	return &Client{invoker: invoker, cache: cache}
}

// rawStats tolerates both snake_case and camelCase field names from the
// metrics service. Historical payloads used snake_case, newer ones camelCase.
type rawStats struct {
	Keyword string `json:"keyword"`

	SearchVolume      *int `json:"searchVolume"`
	SearchVolumeSnake *int `json:"search_volume"`

	KeywordDifficulty      *int `json:"keywordDifficulty"`
	KeywordDifficultySnake *int `json:"keyword_difficulty"`

	CPC *float64 `json:"cpc"`

	Competition *float64 `json:"competition"`

	Intent string `json:"intent"`

	MonthlyTrend      []int `json:"monthlyTrend"`
	MonthlyTrendSnake []int `json:"monthly_trend"`
}

type fetchSeoDataRequest struct {
	Keywords []string `json:"keywords"`
}

type fetchSeoDataResponse struct {
	Data []rawStats `json:"data"`
}

func (r rawStats) normalize() model.SEOStats {
	stats := model.SEOStats{}
	if r.SearchVolume != nil {
		stats.SearchVolume = *r.SearchVolume
	} else if r.SearchVolumeSnake != nil {
		stats.SearchVolume = *r.SearchVolumeSnake
	}
	if r.KeywordDifficulty != nil {
		stats.KeywordDifficulty = *r.KeywordDifficulty
	} else if r.KeywordDifficultySnake != nil {
		stats.KeywordDifficulty = *r.KeywordDifficultySnake
	}
	if r.CPC != nil {
		stats.CPC = *r.CPC
	}
	if r.Competition != nil {
		stats.Competition = *r.Competition
	}
	stats.Intent = model.SearchIntent(r.Intent)
	if r.MonthlyTrend != nil {
		stats.MonthlyTrend = r.MonthlyTrend
	} else {
		stats.MonthlyTrend = r.MonthlyTrendSnake
	}
	return stats
}

// Enrich fetches stats for the full keyword list in one batched call and
// returns them keyed by keyword. Returns nil on any error so that a metrics
// outage never blocks the extraction pipeline.
func (c *Client) Enrich(ctx context.Context, keywords []string) map[string]model.SEOStats {
	if len(keywords) == 0 {
		return map[string]model.SEOStats{}
	}

	stats, missing := c.readCache(ctx, keywords)
	if len(missing) == 0 {
		return stats
	}

	raw, err := c.invoker.Invoke(ctx, FetchSeoDataFunction, fetchSeoDataRequest{Keywords: missing}, nil)
	if err != nil {
		Logger.Log.Warn("seo enrichment unavailable, continuing without stats: ", err)
		return nil
	}
	var res fetchSeoDataResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		Logger.Log.Warn("fail to parse seo enrichment response: ", err)
		return nil
	}

	for _, r := range res.Data {
		normalized := r.normalize()
		stats[r.Keyword] = normalized
		c.writeCache(ctx, r.Keyword, normalized)
	}
	return stats
}

// readCache returns the cached stats and the keywords that still need a
// remote lookup. Cache failures degrade to a full remote fetch.
func (c *Client) readCache(ctx context.Context, keywords []string) (map[string]model.SEOStats, []string) {
	stats := map[string]model.SEOStats{}
	if c.cache == nil {
		return stats, keywords
	}

	keys := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		keys = append(keys, utils.SeoStatsKey(kw))
	}
	values, err := c.cache.MGetValues(ctx, keys)
	if err != nil {
		Logger.Log.Warn("seo stats cache read failed: ", err)
		return stats, keywords
	}

	missing := []string{}
	for i, kw := range keywords {
		if values[i] == "" {
			missing = append(missing, kw)
			continue
		}
		var cached model.SEOStats
		if err := json.Unmarshal([]byte(values[i]), &cached); err != nil {
			missing = append(missing, kw)
			continue
		}
		stats[kw] = cached
	}
	return stats, missing
}

func (c *Client) writeCache(ctx context.Context, keyword string, stats model.SEOStats) {
	if c.cache == nil {
		return
	}
	serialized, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.cache.SetValue(ctx, utils.SeoStatsKey(keyword), string(serialized), statsCacheTTL); err != nil {
		Logger.Log.Warn("seo stats cache write failed: ", err)
	}
}

// ApplyStats attaches fetched stats to keyword candidates in place. A nil
// stats map leaves candidates untouched.
func ApplyStats(keywords []model.KeywordCandidate, stats map[string]model.SEOStats) {
	if stats == nil {
		return
	}
	for i := range keywords {
		if s, ok := stats[keywords[i].Keyword]; ok {
			copied := s
			keywords[i].SEOStats = &copied
		}
	}
}

// ApplyTopicStats attaches stats to topics via their seed keyword. Topics
// whose seed has no stats keep nil stats.
func ApplyTopicStats(topics []model.TopicCandidate, stats map[string]model.SEOStats) {
	if stats == nil {
		return
	}
	for i := range topics {
		if s, ok := stats[topics[i].Keyword]; ok {
			copied := s
			topics[i].SEOStats = &copied
		}
	}
}
