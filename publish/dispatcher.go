package publish

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish/sink"
	"github.com/seoforge/seoforge/store"
	Logger "github.com/seoforge/seoforge/utils/log"
)

// Receipt is the typed outcome of one dispatch, returned to the API layer
// instead of a bare status string.
type Receipt struct {
	PostID     string                 `json:"post_id"`
	SiteID     string                 `json:"site_id"`
	Platform   model.Platform         `json:"platform"`
	Status     model.PublishingStatus `json:"status"`
	ExternalID string                 `json:"external_id,omitempty"`
}

// Dispatcher routes a post to the adapter for its site's platform and owns
// the status lifecycle around the call. The publishing status row is the
// single source of truth; the conditional transition into "publishing" is
// what serializes concurrent dispatches of the same post.
type Dispatcher struct {
	posts    store.PostStore
	creds    CredentialSource
	adapters Registry
	events   sink.PublishEventSink
}

func NewDispatcher(posts store.PostStore, creds CredentialSource, adapters Registry, events sink.PublishEventSink) *Dispatcher {
	return &Dispatcher{
		posts:    posts,
		creds:    creds,
		adapters: adapters,
		events:   events,
	}
}

// dispatchableStatuses are the statuses a publish may start from. A post
// already in "publishing" is owned by another dispatch; "published" posts
// republish through the same path since platforms treat our calls as create.
var dispatchableStatuses = []model.PublishingStatus{
	model.PublishingStatusPending,
	model.PublishingStatusScheduled,
	model.PublishingStatusFailed,
	model.PublishingStatusPublished,
}

// Publish runs one full dispatch for the given post. Configuration problems
// are reported without touching the post's status; anything that fails after
// the transition into "publishing" lands the post in "failed".
func (d *Dispatcher) Publish(ctx context.Context, postID string) (*Receipt, error) {
	post, err := d.posts.GetPostWithSite(ctx, postID)
	if err != nil {
		return nil, err
	}
	site := &post.Site

	// validate before transitioning so misconfigured sites never burn a
	// status cycle
	if site.Id == "" {
		return nil, NewConfigurationError("post %s has no connected site", postID)
	}
	if site.Platform == "" {
		return nil, NewConfigurationError("site %s has no platform set", site.Id)
	}
	if site.Credentials == "" {
		return nil, NewConfigurationError("site %s has no credentials, reconnect it", site.Id)
	}
	adapter, ok := d.adapters.Lookup(site.Platform)
	if !ok {
		return nil, NewConfigurationError("no adapter registered for platform %s", site.Platform)
	}

	if err := d.posts.TransitionStatus(ctx, postID, dispatchableStatuses, model.PublishingStatusPublishing); err != nil {
		if errors.Is(err, store.ErrStatusConflict) {
			return nil, ErrAlreadyPublishing
		}
		return nil, err
	}

	creds, err := d.creds.Open(ctx, site.Credentials)
	if err != nil {
		d.fail(ctx, post, errors.Wrap(err, "opening site credentials"))
		return nil, errors.Wrap(err, "opening site credentials")
	}

	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}

	externalID, err := adapter.Publish(ctx, post, site, Credentials(creds))
	if err != nil {
		d.fail(ctx, post, err)
		return nil, err
	}

	if err := d.posts.MarkPublished(ctx, postID, externalID); err != nil {
		// the CMS has the post, losing the write is bad but not fatal
		Logger.Log.Error("failed to record published status for post ", postID, ": ", err)
	}
	d.push(&sink.PublishEvent{
		PostID:     post.Id,
		SiteID:     site.Id,
		Platform:   site.Platform,
		Status:     model.PublishingStatusPublished,
		ExternalID: externalID,
		OccurredAt: time.Now(),
	})
	return &Receipt{
		PostID:     post.Id,
		SiteID:     site.Id,
		Platform:   site.Platform,
		Status:     model.PublishingStatusPublished,
		ExternalID: externalID,
	}, nil
}

// fail records the failed status and emits the failure event, both
// best-effort.
func (d *Dispatcher) fail(ctx context.Context, post *model.Post, cause error) {
	if err := d.posts.MarkFailed(ctx, post.Id); err != nil {
		Logger.Log.Error("failed to record failed status for post ", post.Id, ": ", err)
	}
	d.push(&sink.PublishEvent{
		PostID:     post.Id,
		SiteID:     post.Site.Id,
		Platform:   post.Site.Platform,
		Status:     model.PublishingStatusFailed,
		Error:      cause.Error(),
		OccurredAt: time.Now(),
	})
}

func (d *Dispatcher) push(event *sink.PublishEvent) {
	if d.events == nil {
		return
	}
	event.EventID = uuid.New().String()
	if err := d.events.Push(event); err != nil {
		Logger.Log.Warn("failed to push publish event: ", err)
	}
}
