// Package storefront keeps the client-side catalog view and cart mirror.
// The mirror never talks to the cart API; it reproduces the cart arithmetic
// locally for display.
package storefront

import (
	"context"
	"strings"

	"session-cart/internal/catalog"
	"session-cart/internal/discount"
	"session-cart/internal/model"
	"session-cart/internal/pricing"

	"github.com/rs/zerolog"
)

// Line is a product in the local cart with its quantity.
type Line struct {
	model.Product
	Quantity int
}

// DiscountState is the discount shown to the shopper.
type DiscountState struct {
	Code       string
	Percentage int
	Message    string
}

// Store holds the catalog and the local cart. It is not safe for concurrent use.
type Store struct {
	catalog  []model.Product
	lines    []Line
	discount DiscountState
	resolver *discount.Resolver
	logger   zerolog.Logger
}

// NewStore creates an empty storefront.
func NewStore(resolver *discount.Resolver, logger zerolog.Logger) *Store {
	return &Store{
		catalog:  []model.Product{},
		lines:    []Line{},
		resolver: resolver,
		logger:   logger.With().Str("component", "storefront").Logger(),
	}
}

// LoadCatalog fetches the catalog once. A failed fetch is logged and leaves
// the catalog empty.
func (s *Store) LoadCatalog(ctx context.Context, fetcher catalog.Fetcher) {
	products, err := fetcher.FetchProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error fetching products")
		s.catalog = []model.Product{}
		return
	}
	s.catalog = products
	s.logger.Debug().Int("count", len(products)).Msg("catalog loaded")
}

// Products returns the catalog filtered by term.
func (s *Store) Products(term string) []model.Product {
	return catalog.Filter(s.catalog, term)
}

// Product looks up a catalog entry by ID.
func (s *Store) Product(id int64) (model.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// AddToCart increments the product's line or appends it with quantity 1.
func (s *Store) AddToCart(p model.Product) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: 1})
}

// Increment adds one to the line's quantity. Unknown IDs are ignored.
func (s *Store) Increment(id int64) {
	if i := s.indexOf(id); i >= 0 {
		s.lines[i].Quantity++
	}
}

// Decrement removes one from the line's quantity and drops it at zero.
func (s *Store) Decrement(id int64) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = max(0, s.lines[i].Quantity-1)
	if s.lines[i].Quantity == 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// Reset removes the line entirely.
func (s *Store) Reset(id int64) {
	if i := s.indexOf(id); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// Clear empties the cart and resets the discount.
func (s *Store) Clear() {
	s.lines = []Line{}
	s.discount = DiscountState{}
}

// ApplyDiscount applies code and returns the message to show.
// An empty code clears the discount without a message.
func (s *Store) ApplyDiscount(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		s.discount = DiscountState{}
		return ""
	}

	resolved, err := s.resolver.Resolve(code)
	if err != nil {
		s.discount = DiscountState{Code: code, Message: model.ErrInvalidDiscountCode.Message}
		return s.discount.Message
	}

	s.discount = DiscountState{
		Code:       resolved.Code,
		Percentage: resolved.Percentage,
		Message:    discount.AppliedMessage(resolved.Percentage),
	}
	return s.discount.Message
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Discount returns the current discount state.
func (s *Store) Discount() DiscountState {
	return s.discount
}

// Totals recomputes subtotal, discount, total and item count.
func (s *Store) Totals() pricing.Totals {
	lines := make([]pricing.Line, len(s.lines))
	for i, l := range s.lines {
		lines[i] = pricing.Line{Price: l.Price, Quantity: l.Quantity}
	}
	return pricing.Calculate(lines, s.discount.Percentage)
}

func (s *Store) indexOf(id int64) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
