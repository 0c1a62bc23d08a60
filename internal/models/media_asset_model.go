package models

import "time"

// MediaAsset is a piece of rehosted content. SourceURL is where the bytes
// came from (possibly a short-lived generative-image URL); FileURL is the
// durable public URL and stays valid after the source expires.
type MediaAsset struct {
	ID         int64     `db:"id" json:"id"`
	BrandID    int64     `db:"brand_id" json:"brand_id"`
	SourceURL  string    `db:"source_url" json:"source_url"`
	StorageKey string    `db:"storage_key" json:"storage_key"`
	FileURL    string    `db:"file_url" json:"file_url"`
	FileType   string    `db:"file_type" json:"file_type"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
