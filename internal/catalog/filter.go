package catalog

import (
	"strings"

	"session-cart/internal/model"
)

// Filter returns the products whose title contains term, ignoring case.
// A blank term returns the full list in its original order.
func Filter(products []model.Product, term string) []model.Product {
	if strings.TrimSpace(term) == "" {
		return products
	}

	needle := strings.ToLower(term)
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
