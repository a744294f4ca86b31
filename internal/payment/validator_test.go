package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-pos/internal/domain"
)

func totals(total string) domain.Totals {
	t := decimal.RequireFromString(total)
	return domain.Totals{Total: t}
}

func TestValidate_CashSufficient(t *testing.T) {
	v, err := Validate(domain.PaymentCash, totals("22.00"), "25.00")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, v.Method)
	assert.True(t, v.Change.Equal(decimal.RequireFromString("3.00")), "change %s", v.Change)
}

func TestValidate_CashExact(t *testing.T) {
	v, err := Validate(domain.PaymentCash, totals("22.00"), "22.00")
	require.NoError(t, err)
	assert.True(t, v.Change.IsZero())
}

func TestValidate_CashInsufficient(t *testing.T) {
	_, err := Validate(domain.PaymentCash, totals("22.00"), "20.00")
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
}

func TestValidate_CashUnparseable(t *testing.T) {
	for _, tendered := range []string{"", "abc", "12.3.4", "-5.00"} {
		_, err := Validate(domain.PaymentCash, totals("10.00"), tendered)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "tendered %q", tendered)
	}
}

func TestValidate_CardAndMobile(t *testing.T) {
	for _, method := range []domain.PaymentMethod{domain.PaymentCard, domain.PaymentMobile} {
		v, err := Validate(method, totals("18.40"), "")
		require.NoError(t, err, "method %s", method)
		assert.Equal(t, method, v.Method)
		assert.True(t, v.Change.IsZero())
	}
}

func TestValidate_UnknownMethod(t *testing.T) {
	_, err := Validate(domain.PaymentMethod("cheque"), totals("10.00"), "10.00")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
