package models

import (
	"time"

	"github.com/lib/pq"
)

type SocialPost struct {
	ID            int64          `db:"id" json:"id"`
	BrandID       int64          `db:"brand_id" json:"brand_id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	Platform      string         `db:"platform" json:"platform"`
	Content       string         `db:"content" json:"content"`
	Hashtags      pq.StringArray `db:"hashtags" json:"hashtags"`
	ScheduledTime time.Time      `db:"scheduled_time" json:"scheduled_time"`
	Status        string         `db:"status" json:"status"` // draft, scheduled, published, failed
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type PostMedia struct {
	PostID       int64     `db:"post_id"`
	AssetID      int64     `db:"asset_id"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
	PlatformPinterest = "pinterest"
	PlatformTwitter   = "twitter"
)

// Platforms is the full platform set a post may target. Only Facebook and
// Instagram have publish adapters; the rest are rejected by the dispatcher.
var Platforms = []string{
	PlatformFacebook,
	PlatformInstagram,
	PlatformTiktok,
	PlatformPinterest,
	PlatformTwitter,
}

func IsKnownPlatform(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
