// Package catalog reads products from the external read-only product API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"session-cart/internal/model"

	"github.com/rs/zerolog"
)

// DefaultLimit is the number of products fetched from the upstream API.
const DefaultLimit = 10

// Fetcher lists products from the catalog.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

// Client talks to a fakestoreapi-compatible product API.
type Client struct {
	baseURL *url.URL
	limit   int
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a catalog client. A non-positive limit falls back to DefaultLimit.
func NewClient(baseURL string, limit int, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q: scheme and host are required", baseURL)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: u,
		limit:   limit,
		http:    httpClient,
		logger:  logger.With().Str("component", "catalog-client").Logger(),
	}, nil
}

// FetchProducts fetches one page of products.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	u := c.baseURL.JoinPath("products")
	u.RawQuery = url.Values{"limit": {strconv.Itoa(c.limit)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", u.String()).Msg("catalog request failed")
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", u.String()).
			Msg("catalog returned unexpected status")
		return nil, fmt.Errorf("failed to fetch products: unexpected status %d", resp.StatusCode)
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode catalog response")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	if len(products) > c.limit {
		products = products[:c.limit]
	}
	if products == nil {
		products = []model.Product{}
	}

	c.logger.Debug().Int("count", len(products)).Msg("fetched products")

	return products, nil
}
