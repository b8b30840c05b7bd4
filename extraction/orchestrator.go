// Package extraction runs the two-tier keyword extraction strategy: the
// remote LLM-backed function first, with bounded retries, falling back to the
// local rule-based extractor when the remote side is degraded. The remote
// path is higher quality but can be down on quota, network or auth; the local
// path guarantees the caller never dead-ends.
package extraction

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/content"
	"github.com/seoforge/seoforge/keyword"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/remote"
	"github.com/seoforge/seoforge/seo"
	"github.com/seoforge/seoforge/store"
	"github.com/seoforge/seoforge/utils"
	Logger "github.com/seoforge/seoforge/utils/log"
)

const (
	ProxyExtractFunction = "proxy-extract"

	maxRemoteAttempts = 3
	remoteBackoffBase = time.Second

	// the remote function writes results asynchronously, callers should
	// re-poll the row store after this delay
	RemoteRepollDelay = 3 * time.Second
)

// User-facing terminal errors. Neither triggers the local fallback: a network
// failure will also break the fallback's enrichment, and an expired session
// must surface as exactly that.
var (
	ErrNetwork        = errors.New("extraction service unreachable, check your connection")
	ErrSessionExpired = errors.New("session expired, please sign in again")
)

// Mode records which tier produced the outcome.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Outcome is returned to the caller instead of side-effecting notifications,
// the UI layer translates it into whatever it wants to show.
type Outcome struct {
	Mode Mode

	// RepollAfter is non-zero on the remote path: results land in the row
	// store asynchronously and are not carried in this outcome.
	RepollAfter time.Duration

	Keywords []model.KeywordCandidate
	Topics   []model.TopicCandidate
}

type extractRequest struct {
	PostID  string `json:"postId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Orchestrator struct {
	invoker  remote.Invoker
	enricher *seo.Client
	posts    store.PostStore
	policy   utils.RetryPolicy
}

func NewOrchestrator(invoker remote.Invoker, enricher *seo.Client, posts store.PostStore) *Orchestrator {
	return NewOrchestratorWithPolicy(invoker, enricher, posts, utils.RetryPolicy{
		MaxAttempts: maxRemoteAttempts,
		Backoff:     utils.LinearBackoff(remoteBackoffBase),
	})
}

// NewOrchestratorWithPolicy overrides the remote retry policy, mainly so
// tests don't sit through real backoff waits.
func NewOrchestratorWithPolicy(invoker remote.Invoker, enricher *seo.Client, posts store.PostStore, policy utils.RetryPolicy) *Orchestrator {
	return &Orchestrator{
		invoker:  invoker,
		enricher: enricher,
		posts:    posts,
		policy:   policy,
	}
}

// Run attempts remote extraction with retries, classifies the terminal
// failure, and falls back to local extraction plus enrichment for anything
// that is not a network or session problem. Locally computed candidates are
// persisted best-effort.
func (o *Orchestrator) Run(ctx context.Context, post *model.Post) (*Outcome, error) {
	req := extractRequest{
		PostID:  post.Id,
		Title:   post.Title,
		Content: content.ExtractContent(post.Content),
	}

	err := utils.WithRetry(ctx, o.policy, func() error {
		_, invokeErr := o.invoker.Invoke(ctx, ProxyExtractFunction, req, nil)
		return invokeErr
	})
	if err == nil {
		return &Outcome{Mode: ModeRemote, RepollAfter: RemoteRepollDelay}, nil
	}

	if remote.IsNetworkError(err) {
		return nil, ErrNetwork
	}
	if remote.IsAuthError(err) {
		return nil, ErrSessionExpired
	}

	Logger.Log.Warn("remote extraction exhausted, falling back to local extractor: ", err)
	return o.runLocal(ctx, post)
}

func (o *Orchestrator) runLocal(ctx context.Context, post *model.Post) (*Outcome, error) {
	text := content.ExtractContent(post.Content)
	if content.IsLikelyHTML(text) {
		text = content.HTMLToText(text)
	}

	res := keyword.Extract(text, post.Title)

	phrases := make([]string, 0, len(res.Keywords))
	for _, kw := range res.Keywords {
		phrases = append(phrases, kw.Keyword)
	}
	stats := o.enricher.Enrich(ctx, phrases)
	if stats != nil {
		seo.ApplyStats(res.Keywords, stats)
		seo.ApplyTopicStats(res.Topics, stats)
		seo.RankKeywords(res.Keywords)
		seo.RankTopics(res.Topics)
	}

	if err := o.posts.SaveExtraction(ctx, post.Id, res.Keywords, res.Topics); err != nil {
		// local results are still returned to the caller, losing the
		// write-back is not fatal
		Logger.Log.Warn("fail to persist locally extracted candidates: ", err)
	}

	return &Outcome{Mode: ModeLocal, Keywords: res.Keywords, Topics: res.Topics}, nil
}
