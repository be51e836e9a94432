package service

import (
	"context"
	"fmt"

	"session-cart/internal/catalog"
	"session-cart/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	fetcher catalog.Fetcher
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(fetcher catalog.Fetcher, logger zerolog.Logger) ProductService {
	return &productService{
		fetcher: fetcher,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// List fetches the catalog and applies the search filter.
func (s *productService) List(ctx context.Context, search string) ([]model.Product, error) {
	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products")
		return nil, fmt.Errorf("%w: %v", model.ErrCatalogUnavailable, err)
	}

	filtered := catalog.Filter(products, search)

	s.logger.Debug().
		Str("search", search).
		Int("total", len(products)).
		Int("matched", len(filtered)).
		Msg("products listed")

	return filtered, nil
}
