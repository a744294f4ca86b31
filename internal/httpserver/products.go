package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(repo ProductReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.List(c.Request.Context())
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(repo ProductReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func getSaleHandler(repo SaleReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sale, err := repo.GetByInvoiceNo(c.Request.Context(), c.Param("invoiceNo"))
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}
