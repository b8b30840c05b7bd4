// Package store is the row-store boundary. The hosted Postgres owns Post and
// Site rows; this service reads them, performs an operation and writes back
// deltas. Interfaces here exist so the core stays testable with fakes.
package store

import (
	"context"

	"github.com/seoforge/seoforge/model"
)

// PostStore is the slice of row-store operations the publishing and
// extraction pipelines need.
type PostStore interface {
	// GetPostWithSite loads a post and its owning site.
	GetPostWithSite(ctx context.Context, postID string) (*model.Post, error)

	// TransitionStatus conditionally moves a post from one of the expected
	// statuses to the target status. Returns ErrStatusConflict when the post
	// is not in any expected status, which guards racing dispatches.
	TransitionStatus(ctx context.Context, postID string, from []model.PublishingStatus, to model.PublishingStatus) error

	// MarkPublished records a successful publish: status, external id and
	// last-published timestamp in one write.
	MarkPublished(ctx context.Context, postID string, externalID string) error

	// MarkFailed records a failed publish. Callers treat its own failure as
	// best-effort.
	MarkFailed(ctx context.Context, postID string) error

	// SaveExtraction persists locally computed keyword and topic candidates.
	SaveExtraction(ctx context.Context, postID string, keywords []model.KeywordCandidate, topics []model.TopicCandidate) error
}

// SiteStore is the slice of row-store operations the credential gateway
// needs.
type SiteStore interface {
	// ListSitesWithCredentials returns all sites carrying a non-empty
	// credential blob, encrypted or not.
	ListSitesWithCredentials(ctx context.Context) ([]model.Site, error)

	// UpdateCredentials overwrites a site's credential blob.
	UpdateCredentials(ctx context.Context, siteID string, credentials string) error

	// UpdateSiteURL overwrites a site's base URL. Callers normalize first.
	UpdateSiteURL(ctx context.Context, siteID string, siteURL string) error
}
