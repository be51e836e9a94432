package discount

import (
	"context"
	"fmt"
	"strings"

	"session-cart/internal/model"

	"github.com/rs/zerolog"
)

// Resolver turns user-supplied codes into discounts.
type Resolver struct {
	table  Table
	logger zerolog.Logger
}

// NewResolver creates a resolver over the given table.
func NewResolver(table Table, logger zerolog.Logger) *Resolver {
	return &Resolver{
		table:  table,
		logger: logger.With().Str("component", "discount-resolver").Logger(),
	}
}

// LoadTable returns the table stored at filePath, or the built-in table when
// filePath is empty.
func LoadTable(ctx context.Context, filePath string, loader Loader, logger zerolog.Logger) (Table, error) {
	if filePath == "" {
		logger.Info().Msg("using built-in discount table")
		return Builtin(), nil
	}

	table, err := loader.Load(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load discount table: %w", err)
	}
	if table.Size() == 0 {
		return nil, fmt.Errorf("discount table %s is empty", filePath)
	}
	return table, nil
}

// Resolve trims the code and looks it up.
// It returns model.ErrInvalidDiscountCode when the code is unknown.
func (r *Resolver) Resolve(code string) (model.Discount, error) {
	code = strings.TrimSpace(code)

	percentage, ok := r.table.Lookup(code)
	if !ok {
		r.logger.Debug().Str("discount_code", code).Msg("unknown discount code")
		return model.Discount{}, model.ErrInvalidDiscountCode
	}

	return model.Discount{Code: code, Percentage: percentage}, nil
}

// AppliedMessage is the confirmation shown after a code is accepted.
func AppliedMessage(percentage int) string {
	return fmt.Sprintf("%d%% discount applied!", percentage)
}
