package product

import (
	"context"

	"retail-pos/internal/domain"
)

// Repository is the read side of the catalog. The engine never writes stock
// through it; decrements happen only inside the sale repository's
// transaction.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
