package models

import (
	"time"
)

// SocialAccount is a per-brand, per-platform credential bundle. The access
// token is stored AES-GCM encrypted; its meaning is platform-specific
// (page access token for Facebook, business token for Instagram).
type SocialAccount struct {
	ID              int64     `db:"id" json:"id"`
	BrandID         int64     `db:"brand_id" json:"brand_id"`
	Platform        string    `db:"platform" json:"platform"`
	AccountID       string    `db:"account_id" json:"account_id"` // page id / ig business account id
	AccountName     string    `db:"account_name" json:"account_name"`
	AccountUsername string    `db:"account_username" json:"account_username"`
	ProfilePicture  string    `db:"profile_picture_url" json:"profile_picture"`
	AccessToken     string    `db:"access_token" json:"-"`
	TokenExpiresAt  time.Time `db:"token_expires_at" json:"token_expires_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
