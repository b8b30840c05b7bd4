package store

import (
	"context"
	"time"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/utils"
)

// FakeStore is an in-memory PostStore and SiteStore for tests.
type FakeStore struct {
	Posts map[string]*model.Post
	Sites map[string]*model.Site

	// error injection
	FailMarkFailed     bool
	FailSaveExtraction bool
	FailUpdateCreds    bool

	SaveExtractionCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Posts: map[string]*model.Post{},
		Sites: map[string]*model.Site{},
	}
}

func (s *FakeStore) GetPostWithSite(ctx context.Context, postID string) (*model.Post, error) {
	post, ok := s.Posts[postID]
	if !ok {
		return nil, ErrPostNotFound
	}
	copied := *post
	if site, ok := s.Sites[post.SiteID]; ok {
		copied.Site = *site
	}
	return &copied, nil
}

func (s *FakeStore) TransitionStatus(ctx context.Context, postID string, from []model.PublishingStatus, to model.PublishingStatus) error {
	post, ok := s.Posts[postID]
	if !ok {
		return ErrStatusConflict
	}
	expected := make([]string, 0, len(from))
	for _, status := range from {
		expected = append(expected, string(status))
	}
	if !utils.ContainsString(expected, string(post.PublishingStatus)) {
		return ErrStatusConflict
	}
	post.PublishingStatus = to
	return nil
}

func (s *FakeStore) MarkPublished(ctx context.Context, postID string, externalID string) error {
	post, ok := s.Posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	now := time.Now()
	post.PublishingStatus = model.PublishingStatusPublished
	post.ExternalPostId = &externalID
	post.LastPublishedAt = &now
	return nil
}

func (s *FakeStore) MarkFailed(ctx context.Context, postID string) error {
	if s.FailMarkFailed {
		return ErrPostNotFound
	}
	post, ok := s.Posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	post.PublishingStatus = model.PublishingStatusFailed
	return nil
}

func (s *FakeStore) SaveExtraction(ctx context.Context, postID string, keywords []model.KeywordCandidate, topics []model.TopicCandidate) error {
	s.SaveExtractionCalls++
	if s.FailSaveExtraction {
		return ErrPostNotFound
	}
	return nil
}

func (s *FakeStore) ListSitesWithCredentials(ctx context.Context) ([]model.Site, error) {
	sites := []model.Site{}
	for _, site := range s.Sites {
		if site.Credentials != "" {
			sites = append(sites, *site)
		}
	}
	return sites, nil
}

func (s *FakeStore) UpdateCredentials(ctx context.Context, siteID string, credentials string) error {
	if s.FailUpdateCreds {
		return ErrSiteNotFound
	}
	site, ok := s.Sites[siteID]
	if !ok {
		return ErrSiteNotFound
	}
	site.Credentials = credentials
	return nil
}

func (s *FakeStore) UpdateSiteURL(ctx context.Context, siteID string, siteURL string) error {
	site, ok := s.Sites[siteID]
	if !ok {
		return ErrSiteNotFound
	}
	site.SiteURL = siteURL
	return nil
}
