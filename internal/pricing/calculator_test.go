package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"retail-pos/internal/domain"
)

func line(price string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID: "p",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestCompute_TenPercent(t *testing.T) {
	// $10.00 x 2 at 10% tax.
	totals := Compute([]domain.CartLine{line("10.00", 2)}, decimal.RequireFromString("0.10"))

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("2.00")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("22.00")), "total %s", totals.Total)
}

func TestCompute_EmptyCart(t *testing.T) {
	totals := Compute(nil, decimal.RequireFromString("0.10"))
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCompute_RoundsTaxAtBoundaryOnly(t *testing.T) {
	// 3 x $0.33 = $0.99; 7% tax is 0.0693, rounded to $0.07 once, at the end.
	totals := Compute([]domain.CartLine{line("0.33", 3)}, decimal.RequireFromString("0.07"))

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("0.99")))
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("1.06")))
}

func TestCompute_TotalReconcilesToLines(t *testing.T) {
	lines := []domain.CartLine{line("1.99", 3), line("12.49", 1), line("0.85", 7)}
	rate := decimal.RequireFromString("0.10")
	totals := Compute(lines, rate)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	assert.True(t, totals.Subtotal.Equal(sum.Round(2)))
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
	assert.True(t, totals.Tax.Equal(totals.Subtotal.Mul(rate).Round(2)))
}

func TestCompute_Idempotent(t *testing.T) {
	lines := []domain.CartLine{line("2.50", 4), line("9.99", 2)}
	rate := decimal.RequireFromString("0.10")

	first := Compute(lines, rate)
	second := Compute(lines, rate)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
}
