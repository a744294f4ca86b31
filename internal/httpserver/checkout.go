package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"retail-pos/internal/domain"
	"retail-pos/internal/service/checkout"
)

const operatorHeader = "X-Operator-Id"

type addLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Method     string  `json:"method" binding:"required"`
	Tendered   string  `json:"tendered"`
	CustomerID *string `json:"customerId"`
}

func createSessionHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"sessionId": svc.CreateSession()})
	}
}

func addLineHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		lines, err := svc.AddToCart(c.Request.Context(), c.Param("id"), req.ProductID, qty)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines})
	}
}

func setQuantityHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		lines, err := svc.SetQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"), req.Quantity)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines})
	}
}

func removeLineHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.RemoveLine(c.Param("id"), c.Param("productId"))
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines})
	}
}

func clearCartHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearCart(c.Param("id")); err != nil {
			writeEngineError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func totalsHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.GetTotals(c.Param("id"))
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		method, ok := domain.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(req.Method)))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": "unknown payment method"})
			return
		}
		operator := strings.TrimSpace(c.GetHeader(operatorHeader))
		if operator == "" {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": "missing " + operatorHeader + " header"})
			return
		}
		result, err := svc.Checkout(c.Request.Context(), c.Param("id"), checkout.CheckoutInput{
			Method:     method,
			Tendered:   req.Tendered,
			OperatorID: operator,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// writeEngineError maps the engine's error taxonomy onto HTTP responses.
// Validation rejections carry a code and, for stock errors, the offending
// product; a commit failure is surfaced distinctly because its recovery path
// differs from fix-input-and-retry.
func writeEngineError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientStockError
	var commitErr *domain.CommitError
	switch {
	case errors.As(err, &commitErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":      "COMMIT_FAILED",
			"invoiceNo": commitErr.InvoiceNo,
			"message":   "sale commit failed; verify whether the sale persisted before retrying",
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":      "INSUFFICIENT_STOCK",
			"productId": insufficient.ProductID,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "EMPTY_CART", "message": err.Error()})
	case errors.Is(err, domain.ErrOutOfStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "OUT_OF_STOCK", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_QUANTITY", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INVALID_AMOUNT", "message": err.Error()})
	case errors.Is(err, domain.ErrInsufficientPayment):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "INSUFFICIENT_PAYMENT", "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "internal error"})
	}
}
