package handler

import (
	"errors"
	"net/http"

	"session-cart/internal/discount"
	"session-cart/internal/model"
	"session-cart/internal/service"
	"session-cart/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /api/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.AddToCartRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	items, err := h.service.Add(r.Context(), sess, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Product added to cart", Cart: items})
}

// Update handles POST /api/cart/update requests.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.UpdateCartRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	items, err := h.service.Update(r.Context(), sess, *req.ProductID, *req.Quantity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Cart updated", Cart: items})
}

// Remove handles POST /api/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.RemoveFromCartRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	items, err := h.service.Remove(r.Context(), sess, *req.ProductID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Product removed from cart", Cart: items})
}

// Clear handles POST /api/cart/clear requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	items, err := h.service.Clear(r.Context(), sess)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Cart cleared", Cart: items})
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Get(r.Context(), sess))
}

// ApplyDiscount handles POST /api/cart/apply-discount requests.
// Unknown codes answer 200 with success false.
func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.ApplyDiscountRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	applied, err := h.service.ApplyDiscount(r.Context(), sess, *req.Code)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDiscountCode) {
			writeJSON(w, http.StatusOK, model.DiscountResponse{
				Success:  false,
				Message:  model.ErrInvalidDiscountCode.Message,
				Discount: model.Discount{},
			})
			return
		}
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DiscountResponse{
		Success:  true,
		Message:  discount.AppliedMessage(applied.Percentage),
		Discount: applied,
	})
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return nil, false
	}
	return sess, true
}

// writeServiceError maps service errors to status codes.
func (h *CartHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrItemNotFound):
		writeError(w, http.StatusNotFound, model.ErrItemNotFound.Message, h.logger)
	case errors.Is(err, model.ErrInvalidQuantity):
		writeValidationError(w, map[string]string{"quantity": "must be greater than or equal to 0"}, h.logger)
	default:
		h.logger.Error().Err(err).Msg("cart operation failed")
		writeError(w, http.StatusInternalServerError, "internal server error", h.logger)
	}
}
