package sale

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"retail-pos/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// SaveSale writes the sale, its items, the per-item stock decrements, and the
// inventory movements in one transaction. Product rows are locked with
// SELECT ... FOR UPDATE before the stock re-check, so two terminals racing
// for the last unit serialize here: the loser sees the decremented stock and
// gets an InsufficientStockError with the transaction rolled back.
func (r *postgresRepo) SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (*domain.Sale, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock products in a stable order so concurrent commits over overlapping
	// carts cannot deadlock.
	ordered := make([]domain.SaleItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	for _, item := range ordered {
		var stock int
		var active bool
		err := tx.QueryRow(ctx, `
SELECT stock, active
FROM products
WHERE id = $1
FOR UPDATE
`, item.ProductID).Scan(&stock, &active)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if !active {
			return nil, domain.ErrOutOfStock
		}
		if stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: stock,
			}
		}
	}

	var saved domain.Sale
	err = tx.QueryRow(ctx, `
INSERT INTO sales (invoice_no, operator_id, customer_id, subtotal, tax, total, payment_method, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text, created_at
`, sale.InvoiceNo, sale.OperatorID, sale.CustomerID, sale.Subtotal, sale.Tax, sale.Total, sale.PaymentMethod, sale.Status).
		Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		r.logger.Printf("sale repo: insert sale invoice=%s error=%v", sale.InvoiceNo, err)
		return nil, err
	}
	saved.InvoiceNo = sale.InvoiceNo
	saved.OperatorID = sale.OperatorID
	saved.CustomerID = sale.CustomerID
	saved.Subtotal = sale.Subtotal
	saved.Tax = sale.Tax
	saved.Total = sale.Total
	saved.PaymentMethod = sale.PaymentMethod
	saved.Status = sale.Status

	// Items are written in cart order so receipts render the way the
	// operator rang them up.
	for pos, item := range items {
		var saleItem domain.SaleItem
		err := tx.QueryRow(ctx, `
INSERT INTO sale_items (sale_id, product_id, position, quantity, unit_price, line_total)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`, saved.ID, item.ProductID, pos, item.Quantity, item.UnitPrice, item.LineTotal).
			Scan(&saleItem.ID, &saleItem.CreatedAt)
		if err != nil {
			r.logger.Printf("sale repo: insert item invoice=%s product=%s error=%v", sale.InvoiceNo, item.ProductID, err)
			return nil, err
		}
		saleItem.SaleID = saved.ID
		saleItem.ProductID = item.ProductID
		saleItem.Quantity = item.Quantity
		saleItem.UnitPrice = item.UnitPrice
		saleItem.LineTotal = item.LineTotal
		saved.Items = append(saved.Items, saleItem)

		// Guarded so stock never goes negative.
		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $1
WHERE id = $2 AND stock >= $1
`, item.Quantity, item.ProductID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
			}
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO inventory_movements (product_id, quantity_delta, operator_id, reference)
VALUES ($1, $2, $3, $4)
`, item.ProductID, -item.Quantity, sale.OperatorID, sale.InvoiceNo); err != nil {
			r.logger.Printf("sale repo: insert movement invoice=%s product=%s error=%v", sale.InvoiceNo, item.ProductID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale %s: %w", sale.InvoiceNo, err)
	}
	r.logger.Printf("sale repo: committed invoice=%s items=%d total=%s", saved.InvoiceNo, len(saved.Items), saved.Total)
	return &saved, nil
}

func (r *postgresRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error) {
	const q = `
SELECT id::text, invoice_no, operator_id, customer_id, subtotal, tax, total, payment_method, status, created_at
FROM sales
WHERE invoice_no = $1
`
	var s domain.Sale
	err := r.pool.QueryRow(ctx, q, invoiceNo).Scan(
		&s.ID,
		&s.InvoiceNo,
		&s.OperatorID,
		&s.CustomerID,
		&s.Subtotal,
		&s.Tax,
		&s.Total,
		&s.PaymentMethod,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQ = `
SELECT id::text, sale_id::text, product_id::text, quantity, unit_price, line_total, created_at
FROM sale_items
WHERE sale_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.LineTotal, &item.CreatedAt); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &s, nil
}
