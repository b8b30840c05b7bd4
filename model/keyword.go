package model

type SearchIntent string

const (
	IntentInformational SearchIntent = "informational"
	IntentCommercial    SearchIntent = "commercial"
	IntentTransactional SearchIntent = "transactional"
	IntentNavigational  SearchIntent = "navigational"
)

// SEOStats are market metrics for a single keyword fetched from the external
// metrics service. The canonical field names are camelCase; the enrichment
// client also tolerates snake_case source payloads.
type SEOStats struct {
	SearchVolume      int          `json:"searchVolume"`
	KeywordDifficulty int          `json:"keywordDifficulty"`
	CPC               float64      `json:"cpc"`
	Competition       float64      `json:"competition"`
	Intent            SearchIntent `json:"intent,omitempty"`
	MonthlyTrend      []int        `json:"monthlyTrend,omitempty"`
}

// KeywordCandidate is an extracted keyword with a relevance score. Score is
// always clamped to [0,1] before persistence.
type KeywordCandidate struct {
	Keyword  string    `json:"keyword"`
	Score    float64   `json:"score"`
	Source   string    `json:"source,omitempty"` // "title", "body" or "local"
	SEOStats *SEOStats `json:"seoStats,omitempty"`
}

// TopicCandidate is a templated article headline derived from grouped
// keyword candidates.
type TopicCandidate struct {
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
	// Keyword is the seed keyword the headline was templated from.
	Keyword  string    `json:"keyword,omitempty"`
	SEOStats *SEOStats `json:"seoStats,omitempty"`
}
