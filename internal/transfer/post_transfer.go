package transfer

// PostCreation is the dashboard payload for creating a post. Platforms may
// carry several entries; the post service fans them out into one post per
// platform before anything reaches the publish dispatcher.
type PostCreation struct {
	BrandID       int64    `json:"brand_id"`
	Platforms     []string `json:"platforms"`
	Content       string   `json:"content"`
	Hashtags      []string `json:"hashtags"`
	AssetIDs      []int64  `json:"asset_ids"`
	ScheduledTime string   `json:"scheduled_time"` // "2006-01-02T15:04", empty = now
}
