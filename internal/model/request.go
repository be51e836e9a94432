package model

// AddToCartRequest represents the request payload for POST /api/cart/add.
type AddToCartRequest struct {
	ProductID *int64   `json:"product_id" validate:"required"`
	Title     string   `json:"title" validate:"required,notblank"`
	Price     *float64 `json:"price" validate:"required,gte=0"`
	Image     *string  `json:"image"`
}

// UpdateCartRequest represents the request payload for POST /api/cart/update.
type UpdateCartRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,gte=0"`
}

// RemoveFromCartRequest represents the request payload for POST /api/cart/remove.
type RemoveFromCartRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
}

// ApplyDiscountRequest represents the request payload for POST /api/cart/apply-discount.
type ApplyDiscountRequest struct {
	Code *string `json:"code" validate:"required,notblank"`
}

// CartResponse is returned by every mutating cart endpoint.
type CartResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Cart    []CartItem `json:"cart"`
}

// GetCartResponse is returned by GET /api/cart.
type GetCartResponse struct {
	Success  bool        `json:"success"`
	Cart     []CartItem  `json:"cart"`
	Discount Discount    `json:"discount"`
	Summary  CartSummary `json:"summary"`
}

// DiscountResponse is returned by POST /api/cart/apply-discount.
type DiscountResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Discount Discount `json:"discount"`
}
