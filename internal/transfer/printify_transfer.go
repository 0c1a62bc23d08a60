package transfer

type PrintifyImage struct {
	Src       string `json:"src"`
	IsDefault bool   `json:"is_default"`
}

type PrintifyVariant struct {
	ID        int64 `json:"id"`
	Price     int64 `json:"price"`
	IsEnabled bool  `json:"is_enabled"`
}

type PrintifyProduct struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Images      []PrintifyImage   `json:"images"`
	Variants    []PrintifyVariant `json:"variants"`
}

type PrintifyProductList struct {
	Data        []PrintifyProduct `json:"data"`
	CurrentPage int               `json:"current_page"`
	LastPage    int               `json:"last_page"`
}

// DefaultImage returns the product's default image source, falling back to
// the first image.
func (p *PrintifyProduct) DefaultImage() string {
	for _, img := range p.Images {
		if img.IsDefault {
			return img.Src
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].Src
	}
	return ""
}

// FirstEnabledPrice returns the price (in cents) of the first enabled
// variant, or zero.
func (p *PrintifyProduct) FirstEnabledPrice() int64 {
	for _, v := range p.Variants {
		if v.IsEnabled {
			return v.Price
		}
	}
	return 0
}
