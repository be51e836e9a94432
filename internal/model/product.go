package model

// Product represents a product returned by the external catalog API.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Rating is the upstream review summary for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
