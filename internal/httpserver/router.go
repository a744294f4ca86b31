package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"retail-pos/internal/domain"
	"retail-pos/internal/service/checkout"
)

// CheckoutService is the caller-facing cart and commit API.
type CheckoutService interface {
	CreateSession() string
	AddToCart(ctx context.Context, sessionID, productID string, qty int) ([]domain.CartLine, error)
	SetQuantity(ctx context.Context, sessionID, productID string, qty int) ([]domain.CartLine, error)
	RemoveLine(sessionID, productID string) ([]domain.CartLine, error)
	ClearCart(sessionID string) error
	GetTotals(sessionID string) (*checkout.CartView, error)
	Checkout(ctx context.Context, sessionID string, in checkout.CheckoutInput) (*checkout.Result, error)
}

type ProductReader interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type SaleReader interface {
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error)
}

type Deps struct {
	CheckoutSvc CheckoutService
	ProductRepo ProductReader
	SaleRepo    SaleReader
}

// buildRouter wires routes for the terminal API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CheckoutSvc == nil {
		return nil, errors.New("checkout service required")
	}
	if deps.ProductRepo == nil {
		return nil, errors.New("product repository required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.ProductRepo))
	router.GET("/products/:id", getProductHandler(deps.ProductRepo))

	sessions := router.Group("/sessions")
	{
		sessions.POST("", createSessionHandler(deps.CheckoutSvc))
		sessions.POST("/:id/lines", addLineHandler(deps.CheckoutSvc))
		sessions.PATCH("/:id/lines/:productId", setQuantityHandler(deps.CheckoutSvc))
		sessions.DELETE("/:id/lines/:productId", removeLineHandler(deps.CheckoutSvc))
		sessions.DELETE("/:id/lines", clearCartHandler(deps.CheckoutSvc))
		sessions.GET("/:id/totals", totalsHandler(deps.CheckoutSvc))
		sessions.POST("/:id/checkout", checkoutHandler(deps.CheckoutSvc))
	}

	if deps.SaleRepo != nil {
		router.GET("/sales/:invoiceNo", getSaleHandler(deps.SaleRepo))
	}

	return router, nil
}
