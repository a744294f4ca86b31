package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	SKU   string
	Name  string
	Price decimal.Decimal
	Stock int
}

// Apply inserts a small demo catalog for manual testing. It is idempotent
// via ON CONFLICT; stock is only topped up, never reduced, so seeding a
// running terminal does not undo sold inventory.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{SKU: "SKU-COFFEE-250", Name: "Ground Coffee 250g", Price: decimal.RequireFromString("10.00"), Stock: 40},
		{SKU: "SKU-MILK-1L", Name: "Whole Milk 1L", Price: decimal.RequireFromString("1.85"), Stock: 120},
		{SKU: "SKU-BREAD-WHT", Name: "White Bread Loaf", Price: decimal.RequireFromString("2.40"), Stock: 35},
		{SKU: "SKU-CHOC-70", Name: "Dark Chocolate 70%", Price: decimal.RequireFromString("3.15"), Stock: 60},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (sku, name, price, stock, active)
VALUES ($1, $2, $3, $4, true)
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price,
    stock = GREATEST(products.stock, EXCLUDED.stock),
    active = true
`
	_, err := pool.Exec(ctx, q, p.SKU, p.Name, p.Price, p.Stock)
	return err
}
