// Package cart holds the transient, session-owned shopping cart. A cart is
// purely in-memory: it is created empty at the start of a checkout session
// and discarded on clear or successful commit. Stock checks always use the
// live product passed in by the caller; only the unit price is captured at
// add time.
package cart

import (
	"retail-pos/internal/domain"
)

// Cart is an ordered collection of lines, unique by product. It is not safe
// for concurrent use; the owning session serializes access.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty units of product into the cart, merging into an existing line
// for the same product. The merged quantity must not exceed the product's
// current stock.
func (c *Cart) Add(product domain.Product, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !product.Active || product.Stock < 1 {
		return domain.ErrOutOfStock
	}
	for i := range c.lines {
		if c.lines[i].ProductID != product.ID {
			continue
		}
		newQty := c.lines[i].Quantity + qty
		if newQty > product.Stock {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Requested: newQty,
				Available: product.Stock,
			}
		}
		c.lines[i].Quantity = newQty
		return nil
	}
	if qty > product.Stock {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: qty,
			Available: product.Stock,
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  qty,
	})
	return nil
}

// AddProduct adds a single unit of product.
func (c *Cart) AddProduct(product domain.Product) error {
	return c.Add(product, 1)
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line. A quantity above the product's current stock is rejected and the
// line is left unchanged.
func (c *Cart) SetQuantity(product domain.Product, qty int) error {
	if qty <= 0 {
		c.RemoveLine(product.ID)
		return nil
	}
	if qty > product.Stock {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: qty,
			Available: product.Stock,
		}
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity = qty
			return nil
		}
	}
	return domain.ErrNotFound
}

// RemoveLine drops the line for productID. Removing an absent line is a no-op.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
