package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PublishingStatus string

const (
	PublishingStatusPending    PublishingStatus = "pending"
	PublishingStatusScheduled  PublishingStatus = "scheduled"
	PublishingStatusPublishing PublishingStatus = "publishing"
	PublishingStatusPublished  PublishingStatus = "published"
	PublishingStatusFailed     PublishingStatus = "failed"
)

/*

Post is one generated article destined for publishing

Id: primary key
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

SiteID:
Site: the connected CMS this post publishes to, "belongs-to" relation

Title: post title in plain text
Content: post body in markdown, possibly JSON-wrapped by the generation
	pipeline (see content.ExtractContent)
Excerpt: short summary used by platforms that support one
MetaTitle / MetaDescription: SEO meta fields
FeaturedImage: URL of the cover image, optional
Slug: URL slug, derived from title when empty

PublishingStatus: durable record of the publish outcome
ExternalPostId: id assigned by the CMS, set iff the post has reached
	"published" at least once
LastPublishedAt: time of the last successful publish

ExtractedKeywords / RecommendedTopics: serialized candidates written back by
	the extraction pipeline
*/

type Post struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt

	SiteID string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Site   Site   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	Title           string
	Content         string
	Excerpt         string
	MetaTitle       string
	MetaDescription string
	FeaturedImage   string
	Slug            string

	PublishingStatus PublishingStatus `gorm:"default:pending"`
	ExternalPostId   *string
	LastPublishedAt  *time.Time

	ExtractedKeywords datatypes.JSON
	RecommendedTopics datatypes.JSON
}
