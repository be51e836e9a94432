package service

import (
	"context"
	"errors"

	"session-cart/internal/discount"
	"session-cart/internal/model"
	"session-cart/internal/pricing"
	"session-cart/internal/session"

	"github.com/rs/zerolog"
)

// SessionStore persists session state.
type SessionStore interface {
	Save(ctx context.Context, s *session.Session) error
}

// cartService implements CartService.
type cartService struct {
	store    SessionStore
	resolver *discount.Resolver
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store SessionStore, resolver *discount.Resolver, logger zerolog.Logger) CartService {
	return &cartService{
		store:    store,
		resolver: resolver,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// Add inserts a product or increments its quantity.
func (s *cartService) Add(ctx context.Context, sess *session.Session, req *model.AddToCartRequest) ([]model.CartItem, error) {
	item := sess.Cart.Add(*req.ProductID, req.Title, *req.Price, req.Image)

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sess.ID.String()).
		Int64("product_id", item.ID).
		Int("quantity", item.Quantity).
		Msg("product added to cart")

	return sess.Cart.Items(), nil
}

// Update sets the quantity of a product already in the cart.
func (s *cartService) Update(ctx context.Context, sess *session.Session, productID int64, quantity int) ([]model.CartItem, error) {
	if err := sess.Cart.Update(productID, quantity); err != nil {
		s.logger.Debug().
			Str("session_id", sess.ID.String()).
			Int64("product_id", productID).
			Int("quantity", quantity).
			Err(err).
			Msg("cart update rejected")
		return nil, err
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return sess.Cart.Items(), nil
}

// Remove deletes a product from the cart.
func (s *cartService) Remove(ctx context.Context, sess *session.Session, productID int64) ([]model.CartItem, error) {
	if err := sess.Cart.Remove(productID); err != nil {
		s.logger.Debug().
			Str("session_id", sess.ID.String()).
			Int64("product_id", productID).
			Msg("product not in cart")
		return nil, err
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return sess.Cart.Items(), nil
}

// Clear empties the cart and the discount.
func (s *cartService) Clear(ctx context.Context, sess *session.Session) ([]model.CartItem, error) {
	sess.Cart.Clear()
	sess.ClearDiscount()

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("session_id", sess.ID.String()).Msg("cart cleared")

	return sess.Cart.Items(), nil
}

// Get returns the current cart state with totals.
func (s *cartService) Get(ctx context.Context, sess *session.Session) *model.GetCartResponse {
	items := sess.Cart.Items()
	totals := pricing.Calculate(pricing.FromCartItems(items), sess.Discount.Percentage)

	return &model.GetCartResponse{
		Success:  true,
		Cart:     items,
		Discount: sess.Discount,
		Summary:  totals.Summary(),
	}
}

// ApplyDiscount stores the discount for a known code, or clears it.
func (s *cartService) ApplyDiscount(ctx context.Context, sess *session.Session, code string) (model.Discount, error) {
	resolved, err := s.resolver.Resolve(code)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidDiscountCode) {
			return model.Discount{}, err
		}
		sess.ClearDiscount()
		if saveErr := s.save(ctx, sess); saveErr != nil {
			return model.Discount{}, saveErr
		}
		s.logger.Info().Str("session_id", sess.ID.String()).Msg("invalid discount code rejected")
		return model.Discount{}, err
	}

	sess.Discount = resolved
	if err := s.save(ctx, sess); err != nil {
		return model.Discount{}, err
	}

	s.logger.Info().
		Str("session_id", sess.ID.String()).
		Str("discount_code", resolved.Code).
		Int("percentage", resolved.Percentage).
		Msg("discount applied")

	return resolved, nil
}

func (s *cartService) save(ctx context.Context, sess *session.Session) error {
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error().Err(err).Str("session_id", sess.ID.String()).Msg("failed to persist session")
		return err
	}
	return nil
}
