package service

import (
	"context"

	"session-cart/internal/model"
	"session-cart/internal/session"
)

// CartService defines the cart operations available to a session.
// Every mutating call persists the session before returning.
type CartService interface {
	// Add inserts a product with quantity 1, or increments it when already present.
	Add(ctx context.Context, s *session.Session, req *model.AddToCartRequest) ([]model.CartItem, error)

	// Update sets the quantity of a product. A quantity of 0 removes it.
	Update(ctx context.Context, s *session.Session, productID int64, quantity int) ([]model.CartItem, error)

	// Remove deletes a product from the cart.
	Remove(ctx context.Context, s *session.Session, productID int64) ([]model.CartItem, error)

	// Clear empties the cart and drops any active discount.
	Clear(ctx context.Context, s *session.Session) ([]model.CartItem, error)

	// Get returns the cart, the active discount and the priced summary.
	Get(ctx context.Context, s *session.Session) *model.GetCartResponse

	// ApplyDiscount resolves a code and stores the discount on the session.
	// An unknown code clears the stored discount and returns model.ErrInvalidDiscountCode.
	ApplyDiscount(ctx context.Context, s *session.Session, code string) (model.Discount, error)
}

// ProductService defines read access to the product catalog.
type ProductService interface {
	// List fetches the catalog and filters it by title when search is not blank.
	List(ctx context.Context, search string) ([]model.Product, error)
}
