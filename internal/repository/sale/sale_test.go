package sale

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"retail-pos/internal/domain"
	"retail-pos/internal/migrate"
)

func TestPostgres_SaveSale(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	productID := insertProduct(ctx, t, pool, "SKU-TEST-1", "10.00", 5)

	repo := NewPostgres(pool, nil)
	saved, err := repo.SaveSale(ctx, domain.Sale{
		InvoiceNo:     "INV-TEST-0001",
		OperatorID:    "op-1",
		Subtotal:      decimal.RequireFromString("20.00"),
		Tax:           decimal.RequireFromString("2.00"),
		Total:         decimal.RequireFromString("22.00"),
		PaymentMethod: domain.PaymentCash,
		Status:        domain.SaleCompleted,
	}, []domain.SaleItem{{
		ProductID: productID,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("10.00"),
		LineTotal: decimal.RequireFromString("20.00"),
	}})
	if err != nil {
		t.Fatalf("SaveSale: %v", err)
	}
	if saved.ID == "" || len(saved.Items) != 1 {
		t.Fatalf("unexpected sale %+v", saved)
	}

	var stock int
	if err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if stock != 3 {
		t.Fatalf("expected stock 3, got %d", stock)
	}

	var movements int
	var delta int
	err = pool.QueryRow(ctx, `
SELECT COUNT(*), MIN(quantity_delta)
FROM inventory_movements
WHERE reference = $1
`, "INV-TEST-0001").Scan(&movements, &delta)
	if err != nil {
		t.Fatalf("read movements: %v", err)
	}
	if movements != 1 || delta != -2 {
		t.Fatalf("expected one movement of -2, got count=%d delta=%d", movements, delta)
	}

	fetched, err := repo.GetByInvoiceNo(ctx, "INV-TEST-0001")
	if err != nil {
		t.Fatalf("GetByInvoiceNo: %v", err)
	}
	if !fetched.Total.Equal(decimal.RequireFromString("22.00")) {
		t.Fatalf("expected total 22.00, got %s", fetched.Total)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", fetched.Items)
	}
}

func TestPostgres_SaveSale_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	okID := insertProduct(ctx, t, pool, "SKU-OK", "5.00", 10)
	lowID := insertProduct(ctx, t, pool, "SKU-LOW", "5.00", 1)

	repo := NewPostgres(pool, nil)
	_, err := repo.SaveSale(ctx, domain.Sale{
		InvoiceNo:     "INV-TEST-0002",
		OperatorID:    "op-1",
		Subtotal:      decimal.RequireFromString("20.00"),
		Tax:           decimal.RequireFromString("2.00"),
		Total:         decimal.RequireFromString("22.00"),
		PaymentMethod: domain.PaymentCard,
		Status:        domain.SaleCompleted,
	}, []domain.SaleItem{
		{ProductID: okID, Quantity: 2, UnitPrice: decimal.RequireFromString("5.00"), LineTotal: decimal.RequireFromString("10.00")},
		{ProductID: lowID, Quantity: 2, UnitPrice: decimal.RequireFromString("5.00"), LineTotal: decimal.RequireFromString("10.00")},
	})
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != lowID {
		t.Fatalf("expected offending product %s, got %s", lowID, stockErr.ProductID)
	}

	// nothing persisted, no stock touched
	var sales int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&sales); err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if sales != 0 {
		t.Fatalf("expected no sales, got %d", sales)
	}
	var okStock int
	if err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, okID).Scan(&okStock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if okStock != 10 {
		t.Fatalf("expected untouched stock 10, got %d", okStock)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE inventory_movements, sale_items, sales, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, sku, price string, stock int) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO products (sku, name, price, stock, active)
VALUES ($1, $1, $2, $3, true)
RETURNING id::text
`, sku, price, stock).Scan(&id)
	if err != nil {
		t.Fatalf("insert product %s: %v", sku, err)
	}
	return id
}
