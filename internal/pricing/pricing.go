// Package pricing derives cart totals with exact decimal arithmetic.
package pricing

import (
	"session-cart/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is the minimum a cart line needs to contribute to totals.
type Line struct {
	Price    float64
	Quantity int
}

// Totals holds unrounded cart totals.
type Totals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// Calculate computes subtotal, discount amount, total and item count.
// Totals are recomputed from scratch on every call.
func Calculate(lines []Line, percentage int) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, line := range lines {
		price := decimal.NewFromFloat(line.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity
	}

	discount := subtotal.Mul(decimal.NewFromInt(int64(percentage))).Div(hundred)

	return Totals{
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		ItemCount: count,
	}
}

// FromCartItems converts session cart lines to pricing lines.
func FromCartItems(items []model.CartItem) []Line {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{Price: item.Price, Quantity: item.Quantity}
	}
	return lines
}

// Summary rounds the totals to two decimal places for display.
func (t Totals) Summary() model.CartSummary {
	return model.CartSummary{
		Subtotal:  t.Subtotal.Round(2).InexactFloat64(),
		Discount:  t.Discount.Round(2).InexactFloat64(),
		Total:     t.Total.Round(2).InexactFloat64(),
		ItemCount: t.ItemCount,
	}
}

// Format renders an amount with two decimal places.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
