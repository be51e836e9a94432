package handler

import (
	"errors"
	"net/http"

	"session-cart/internal/model"
	"session-cart/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with an optional search term.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		if errors.Is(err, model.ErrCatalogUnavailable) {
			writeError(w, http.StatusBadGateway, model.ErrCatalogUnavailable.Message, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
