package models

import "time"

type PostingHistory struct {
	ID             int64     `db:"id" json:"id"`
	BrandID        int64     `db:"brand_id" json:"brand_id"`
	PostID         int64     `db:"post_id" json:"post_id"`
	Platform       string    `db:"platform" json:"platform"`
	PlatformPostID string    `db:"platform_post_id" json:"platform_post_id"`
	ErrorCode      string    `db:"error_code" json:"error_code"`
	ErrorMessage   string    `db:"error_message" json:"error_message"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
