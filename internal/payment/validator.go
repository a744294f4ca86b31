// Package payment validates the chosen payment method against computed
// totals. The external card/mobile terminal is out of scope; for those
// methods the engine only records the choice.
package payment

import (
	"strings"

	"github.com/shopspring/decimal"

	"retail-pos/internal/domain"
)

// Validated is the outcome of a successful payment check. Change is zero for
// non-cash methods and tendered minus total for cash.
type Validated struct {
	Method   domain.PaymentMethod
	Tendered decimal.Decimal
	Change   decimal.Decimal
}

// Validate checks tendered input for the method. Cash requires a parseable,
// non-negative decimal at least equal to the total. Card and mobile carry no
// numeric input.
func Validate(method domain.PaymentMethod, totals domain.Totals, tendered string) (Validated, error) {
	switch method {
	case domain.PaymentCash:
		amount, err := decimal.NewFromString(strings.TrimSpace(tendered))
		if err != nil || amount.IsNegative() {
			return Validated{}, domain.ErrInvalidAmount
		}
		if amount.LessThan(totals.Total) {
			return Validated{}, domain.ErrInsufficientPayment
		}
		return Validated{
			Method:   method,
			Tendered: amount,
			Change:   amount.Sub(totals.Total),
		}, nil
	case domain.PaymentCard, domain.PaymentMobile:
		return Validated{Method: method, Tendered: totals.Total, Change: decimal.Zero}, nil
	default:
		return Validated{}, domain.ErrInvalidAmount
	}
}
