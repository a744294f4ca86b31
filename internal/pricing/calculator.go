// Package pricing derives totals from cart lines and a configured tax rate.
package pricing

import (
	"github.com/shopspring/decimal"

	"retail-pos/internal/domain"
)

// Compute returns the totals for the given lines. It is a pure function and
// must be re-run after every cart mutation; totals are never maintained
// incrementally. Intermediate arithmetic stays at full decimal precision;
// rounding to two places happens here, at the boundary where values are
// persisted or shown.
func Compute(lines []domain.CartLine, taxRate decimal.Decimal) domain.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
