package domain

import "github.com/shopspring/decimal"

// CartLine ties a product to a quantity and the unit price captured when the
// line was first added. The captured price is what the sale is charged at,
// independent of later catalog price changes.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the line's contribution to the subtotal.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is derived from cart lines and a tax rate. It is recomputed on
// demand, never patched incrementally.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
