package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// CreateOrder handles POST /api/orders.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind create request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	h.metrics.OrderCreated()
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/orders. All orders, newest first; the
// dashboard filters by status on its side.
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func parseOrderID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// UpdateOrder handles PATCH /api/orders/:id.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	if req.HasStatus && req.Status != nil && *req.Status == models.OrderStatusCompleted {
		h.metrics.OrderCompleted()
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id. The deleted record is returned
// so staff get a confirmation copy; there is no undo.
func (h *Handlers) DeleteOrder(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orders.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	h.metrics.OrderDeleted()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": order,
	})
}
