package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// ParsePaymentMethod maps a request string to a known method.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentMobile:
		return PaymentMethod(s), true
	}
	return "", false
}

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleHeld      SaleStatus = "held"
	SaleVoided    SaleStatus = "voided"
)

// Sale is the persisted transaction header. Once committed it is immutable;
// total always equals subtotal + tax and subtotal always equals the sum of
// its item line totals.
type Sale struct {
	ID            string          `json:"id"`
	InvoiceNo     string          `json:"invoiceNo"`
	OperatorID    string          `json:"operatorId"`
	CustomerID    *string         `json:"customerId,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        SaleStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []SaleItem      `json:"items,omitempty"`
}

// SaleItem is owned exclusively by its Sale. The unit price is the captured
// cart price, not a reference to the live catalog price.
type SaleItem struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"saleId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	CreatedAt time.Time       `json:"createdAt"`
}

// InventoryMovement records one stock change. Sales write one movement per
// item with a negative delta and the invoice number as reference, in the
// same transaction as the sale itself.
type InventoryMovement struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	QuantityDelta int       `json:"quantityDelta"`
	OperatorID    string    `json:"operatorId"`
	Reference     string    `json:"reference"`
	CreatedAt     time.Time `json:"createdAt"`
}
