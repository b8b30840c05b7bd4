package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrStatusConflict means the conditional status transition matched no row:
// either the post does not exist or another dispatch got there first.
var ErrStatusConflict = errors.New("post is not in an expected publishing status")

// ErrPostNotFound means the requested post row does not exist.
var ErrPostNotFound = errors.New("post not found")

// ErrSiteNotFound means the requested site row does not exist.
var ErrSiteNotFound = errors.New("site not found")

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetPostWithSite(ctx context.Context, postID string) (*model.Post, error) {
	var post model.Post
	res := s.db.WithContext(ctx).Preload("Site").Where("id = ?", postID).First(&post)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "fail to load post")
	}
	return &post, nil
}

func (s *GormStore) TransitionStatus(ctx context.Context, postID string, from []model.PublishingStatus, to model.PublishingStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND publishing_status IN ?", postID, from).
		Update("publishing_status", to)
	if res.Error != nil {
		return errors.Wrap(res.Error, "fail to transition post status")
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (s *GormStore) MarkPublished(ctx context.Context, postID string, externalID string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"publishing_status": model.PublishingStatusPublished,
			"external_post_id":  externalID,
			"last_published_at": now,
		}).Error
}

func (s *GormStore) MarkFailed(ctx context.Context, postID string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Update("publishing_status", model.PublishingStatusFailed).Error
}

func (s *GormStore) SaveExtraction(ctx context.Context, postID string, keywords []model.KeywordCandidate, topics []model.TopicCandidate) error {
	serializedKeywords, err := json.Marshal(keywords)
	if err != nil {
		return errors.Wrap(err, "fail to serialize keywords")
	}
	serializedTopics, err := json.Marshal(topics)
	if err != nil {
		return errors.Wrap(err, "fail to serialize topics")
	}
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"extracted_keywords": datatypes.JSON(serializedKeywords),
			"recommended_topics": datatypes.JSON(serializedTopics),
		}).Error
}

func (s *GormStore) ListSitesWithCredentials(ctx context.Context) ([]model.Site, error) {
	var sites []model.Site
	res := s.db.WithContext(ctx).Where("credentials IS NOT NULL AND credentials != ''").Find(&sites)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "fail to list sites")
	}
	return sites, nil
}

func (s *GormStore) UpdateCredentials(ctx context.Context, siteID string, credentials string) error {
	res := s.db.WithContext(ctx).Model(&model.Site{}).
		Where("id = ?", siteID).
		Update("credentials", credentials)
	if res.Error != nil {
		return errors.Wrap(res.Error, "fail to update site credentials")
	}
	if res.RowsAffected == 0 {
		return ErrSiteNotFound
	}
	return nil
}

func (s *GormStore) UpdateSiteURL(ctx context.Context, siteID string, siteURL string) error {
	res := s.db.WithContext(ctx).Model(&model.Site{}).
		Where("id = ?", siteID).
		Update("site_url", siteURL)
	if res.Error != nil {
		return errors.Wrap(res.Error, "fail to update site URL")
	}
	if res.RowsAffected == 0 {
		return ErrSiteNotFound
	}
	return nil
}
