package sale

import (
	"context"

	"retail-pos/internal/domain"
)

// Repository persists committed sales. SaveSale is the single atomic unit:
// the sale header, its items, the stock decrements, and the inventory
// movements all land in one transaction or not at all.
type Repository interface {
	SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (*domain.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error)
}
