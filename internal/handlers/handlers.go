package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/auth"
	"github.com/forno-rosati/bakery-orders-service/internal/catalog"
	"github.com/forno-rosati/bakery-orders-service/internal/metrics"
	"github.com/forno-rosati/bakery-orders-service/internal/service"
)

// Handlers bundles the HTTP handlers and their collaborators.
type Handlers struct {
	orders  *service.OrderService
	gate    *auth.Gate
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	db      *sql.DB
	logger  *logrus.Entry
}

// NewHandlers creates the handler set.
func NewHandlers(
	orders *service.OrderService,
	gate *auth.Gate,
	cat *catalog.Catalog,
	m *metrics.Metrics,
	db *sql.DB,
	logger *logrus.Entry,
) *Handlers {
	return &Handlers{
		orders:  orders,
		gate:    gate,
		catalog: cat,
		metrics: m,
		db:      db,
		logger:  logger.WithField("component", "handlers"),
	}
}

// handleError converts every error into the JSON envelope {error, details?}.
// Nothing propagates to the transport layer as an unhandled fault.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reach the order store",
			"details": storeErr.Op,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
