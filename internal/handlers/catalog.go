package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProducts handles GET /api/products. The catalog is static
// configuration; the order form uses it to compute line-item prices.
func (h *Handlers) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Products)
}
