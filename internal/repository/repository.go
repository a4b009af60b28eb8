package repository

import (
	"context"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// OrderRepository is the persistence boundary for orders. Every mutation is a
// single atomic statement against the remote store; Update and Delete return
// apperrors.ErrNotFound when the id matches no row.
type OrderRepository interface {
	// Create persists a new order and returns it with the store-assigned id
	// and creation timestamp filled in.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]*models.Order, error)

	// GetByID retrieves a single order.
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// Update applies only the fields present in req and returns the updated
	// row.
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error)

	// Delete physically removes the row and returns it for confirmation.
	Delete(ctx context.Context, id int64) (*models.Order, error)
}

// OrderCache caches the order list between polls. The cache is optional; the
// default deployment runs without one and every read is a fresh round trip.
type OrderCache interface {
	GetList(ctx context.Context) ([]*models.Order, error)
	SetList(ctx context.Context, orders []*models.Order) error
	Invalidate(ctx context.Context) error
}

// Ensure the Postgres repository satisfies the contract.
var _ OrderRepository = (*PostgresOrderRepository)(nil)
var _ OrderCache = (*RedisOrderCache)(nil)
