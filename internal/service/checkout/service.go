// Package checkout is the transactional core of the terminal: it owns the
// session carts and turns a validated cart into a durable sale with its
// items, stock decrements, and inventory movements.
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retail-pos/internal/cart"
	"retail-pos/internal/domain"
	"retail-pos/internal/invoice"
	"retail-pos/internal/payment"
	"retail-pos/internal/pricing"
)

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type saleRepo interface {
	SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (*domain.Sale, error)
}

type Service struct {
	products productRepo
	sales    saleRepo
	invoices *invoice.Generator
	taxRate  decimal.Decimal

	mu       sync.Mutex
	sessions map[string]*session
}

// session serializes cart access and commits; one checkout is in flight per
// cart at a time.
type session struct {
	mu   sync.Mutex
	cart *cart.Cart
}

func New(products productRepo, sales saleRepo, invoices *invoice.Generator, taxRate decimal.Decimal) *Service {
	return &Service{
		products: products,
		sales:    sales,
		invoices: invoices,
		taxRate:  taxRate,
		sessions: make(map[string]*session),
	}
}

// CreateSession opens a fresh cart and returns its session id.
func (s *Service) CreateSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{cart: cart.New()}
	s.mu.Unlock()
	return id
}

func (s *Service) getSession(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// AddToCart adds qty units of the product to the session cart, checking the
// live catalog stock first.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string, qty int) ([]domain.CartLine, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.cart.Add(*product, qty); err != nil {
		return nil, err
	}
	return sess.cart.Lines(), nil
}

// SetQuantity replaces a line's quantity against live stock; zero removes
// the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, qty int) ([]domain.CartLine, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.cart.SetQuantity(*product, qty); err != nil {
		return nil, err
	}
	return sess.cart.Lines(), nil
}

func (s *Service) RemoveLine(sessionID, productID string) ([]domain.CartLine, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.RemoveLine(productID)
	return sess.cart.Lines(), nil
}

func (s *Service) ClearCart(sessionID string) error {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Clear()
	return nil
}

// CartView is the rendered state of a session cart.
type CartView struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.Totals     `json:"totals"`
}

// GetTotals recomputes totals from the current lines. Calling it twice
// without a mutation in between returns identical values.
func (s *Service) GetTotals(sessionID string) (*CartView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	lines := sess.cart.Lines()
	return &CartView{
		Lines:  lines,
		Totals: pricing.Compute(lines, s.taxRate),
	}, nil
}

type CheckoutInput struct {
	Method     domain.PaymentMethod
	Tendered   string
	OperatorID string
	CustomerID *string
}

// Result carries the finalized sale plus the cash change, which is handed to
// the operator but never persisted.
type Result struct {
	Sale   *domain.Sale    `json:"sale"`
	Change decimal.Decimal `json:"change"`
}

// Checkout runs the commit sequence: validate the cart and payment, re-check
// live stock for every line, then persist sale, items, stock decrements, and
// movements as one unit. Validation failures leave no trace; a persistence
// failure after validation comes back as *domain.CommitError so the caller
// knows to check whether the sale landed before retrying. The session cart is
// cleared only on success.
func (s *Service) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*Result, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Validating.
	if sess.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	lines := sess.cart.Lines()
	totals := pricing.Compute(lines, s.taxRate)
	validated, err := payment.Validate(in.Method, totals, in.Tendered)
	if err != nil {
		return nil, err
	}

	// Reserving: re-fetch live products to catch stock drained since the
	// lines were added. The authoritative check re-runs under row locks
	// inside the save transaction; this pass rejects cheaply without
	// touching the database for writes.
	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Active {
			return nil, domain.ErrOutOfStock
		}
		if product.Stock < line.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: product.Stock,
			}
		}
	}

	// Persisting.
	invoiceNo := s.invoices.Generate()
	sale := domain.Sale{
		InvoiceNo:     invoiceNo,
		OperatorID:    in.OperatorID,
		CustomerID:    in.CustomerID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: validated.Method,
		Status:        domain.SaleCompleted,
	}
	items := make([]domain.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.SaleItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal().Round(2),
		})
	}

	saved, err := s.sales.SaveSale(ctx, sale, items)
	if err != nil {
		// Stock races and vanished products roll the transaction back
		// cleanly; they stay validation errors. Anything else is a commit
		// failure.
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOutOfStock) {
			return nil, err
		}
		return nil, &domain.CommitError{InvoiceNo: invoiceNo, Err: err}
	}

	// Committed.
	sess.cart.Clear()
	return &Result{Sale: saved, Change: validated.Change}, nil
}
