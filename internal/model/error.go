package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeItemNotFound        = "ITEM_NOT_FOUND"
	ErrCodeInvalidDiscountCode = "INVALID_DISCOUNT_CODE"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeCatalogUnavailable  = "CATALOG_UNAVAILABLE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrItemNotFound        = NewDomainError(ErrCodeItemNotFound, "Product not found in cart")
	ErrInvalidDiscountCode = NewDomainError(ErrCodeInvalidDiscountCode, "Invalid code")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must not be negative")
	ErrCatalogUnavailable  = NewDomainError(ErrCodeCatalogUnavailable, "failed to fetch products")
)
