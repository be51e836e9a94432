package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a single line in a session cart, keyed by product ID.
type CartItem struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    *string `json:"image"`
	Quantity int     `json:"quantity"`
}

// Discount is the discount code applied to a session.
// The zero value means no discount is active.
type Discount struct {
	Code       string `json:"code"`
	Percentage int    `json:"percentage"`
}

// IsZero reports whether no discount is active.
func (d Discount) IsZero() bool {
	return d.Code == "" && d.Percentage == 0
}

// CartSummary holds derived cart totals, rounded to two decimal places.
type CartSummary struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// SessionRecord is the persisted form of a session's cart and discount.
type SessionRecord struct {
	ID        uuid.UUID  `db:"id"`
	Items     []CartItem `db:"cart"`
	Discount  *Discount  `db:"discount"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	ExpiresAt time.Time  `db:"expires_at"`
}
