package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOutOfStock rejects adding a product with no stock or an inactive product.
	ErrOutOfStock = errors.New("product out of stock")
	// ErrInvalidQuantity rejects a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidAmount rejects a tendered amount that does not parse as a
	// non-negative decimal.
	ErrInvalidAmount = errors.New("invalid tendered amount")
	// ErrInsufficientPayment rejects cash tender below the sale total.
	ErrInsufficientPayment = errors.New("insufficient payment")
)

// InsufficientStockError names the offending product so the rejection can be
// shown against the exact line. It is a validation failure: no writes have
// happened when it is returned.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// CommitError marks a persisting-phase failure. Unlike validation errors it
// is not silently retryable: the caller must check whether the sale landed
// before trying again.
type CommitError struct {
	InvoiceNo string
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed for invoice %s: %v", e.InvoiceNo, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
