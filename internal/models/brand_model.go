package models

import "time"

// Brand is a tenant. Slug is the stable identifier used to resolve
// storage credentials; the display name is never used for dispatch.
type Brand struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Accounts []*SocialAccount `db:"-" json:"accounts,omitempty"`
}

// AccountFor returns the brand's account for a platform, or nil. At most
// one account per (brand, platform) pair is kept.
func (b *Brand) AccountFor(platform string) *SocialAccount {
	for _, acc := range b.Accounts {
		if acc.Platform == platform {
			return acc
		}
	}
	return nil
}
