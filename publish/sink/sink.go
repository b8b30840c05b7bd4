// Package sink carries publish outcome events to wherever operations wants
// them: stderr in development, SNS in production. Pushing an event is always
// best-effort, a sink failure never fails a publish.
package sink

import (
	"time"

	"github.com/seoforge/seoforge/model"
)

// PublishEvent records the outcome of one dispatch.
type PublishEvent struct {
	// EventID uniquely identifies the dispatch attempt, downstream consumers
	// key dedup and tracing on it
	EventID    string                 `json:"event_id"`
	PostID     string                 `json:"post_id"`
	SiteID     string                 `json:"site_id"`
	Platform   model.Platform         `json:"platform"`
	Status     model.PublishingStatus `json:"status"`
	ExternalID string                 `json:"external_id,omitempty"`
	Error      string                 `json:"error,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type PublishEventSink interface {
	Push(event *PublishEvent) error
}
