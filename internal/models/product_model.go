package models

import "time"

// Product is a catalog entry synced from the print-on-demand provider and
// optionally published to the storefront.
type Product struct {
	ID                int64     `db:"id" json:"id"`
	BrandID           int64     `db:"brand_id" json:"brand_id"`
	PrintifyProductID string    `db:"printify_product_id" json:"printify_product_id"`
	ShopifyProductID  string    `db:"shopify_product_id" json:"shopify_product_id"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	ImageURL          string    `db:"image_url" json:"image_url"`
	PriceCents        int64     `db:"price_cents" json:"price_cents"`
	Status            string    `db:"status" json:"status"` // synced, published
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ProductStatusSynced    = "synced"
	ProductStatusPublished = "published"
)
