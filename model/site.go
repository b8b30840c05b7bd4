package model

import (
	"time"

	"gorm.io/gorm"
)

type Platform string

const (
	PlatformWordPress Platform = "wordpress"
	PlatformShopify   Platform = "shopify"
	PlatformGhost     Platform = "ghost"
	PlatformWebflow   Platform = "webflow"
	PlatformHubSpot   Platform = "hubspot"
	PlatformFramer    Platform = "framer"
	PlatformRest      Platform = "rest"
)

/*

Site is a user's connected content-management target

Id: primary key
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

UserID: owning user in the hosted auth system, opaque to this service

Platform: which CMS the site runs on, selects the publish adapter
SiteURL: base URL of the CMS, https-normalized with trailing slash stripped
Credentials: opaque credential blob. Once encrypted by the credential
	gateway it carries the "enc:v1:" marker and must never be re-encrypted.
*/

type Site struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt

	UserID string

	Platform    Platform
	SiteURL     string
	Credentials string
}
