package transfer

type ShopifyImage struct {
	Src string `json:"src"`
}

type ShopifyVariant struct {
	Price string `json:"price"`
}

type ShopifyProduct struct {
	ID       int64            `json:"id,omitempty"`
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Vendor   string           `json:"vendor"`
	Status   string           `json:"status"`
	Images   []ShopifyImage   `json:"images,omitempty"`
	Variants []ShopifyVariant `json:"variants,omitempty"`
}

type ShopifyProductRequest struct {
	Product ShopifyProduct `json:"product"`
}

type ShopifyProductResponse struct {
	Product ShopifyProduct `json:"product"`
	Errors  map[string]any `json:"errors,omitempty"`
}
