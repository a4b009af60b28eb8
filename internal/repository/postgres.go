package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

const orderColumns = "id, items, pickup_time, customer_name, notes, total_price, status, created_at"

// PostgresOrderRepository implements OrderRepository against the hosted
// Postgres database. Items travel through a JSON text column.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Entry) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger.WithField("component", "order-repository"),
	}
}

// Create persists a new order. The database assigns the id and stamps
// created_at with its own clock.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.logger.WithFields(logrus.Fields{
		"customer":    order.CustomerName,
		"item_count":  len(order.Items),
		"pickup_time": order.PickupTime,
	}).Debug("Creating order")

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, apperrors.NewStoreError("marshal items", err)
	}

	query := `
		INSERT INTO orders (items, pickup_time, customer_name, notes, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		string(itemsJSON),
		order.PickupTime,
		order.CustomerName,
		order.Notes,
		order.TotalPrice,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.logger.WithError(err).Error("Failed to create order")
		return nil, apperrors.NewStoreError("insert order", err)
	}

	r.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalPrice,
	}).Info("Order created")

	return order, nil
}

// List returns every order, newest first. The dashboard filters by status
// client-side, so no server-side filtering is applied.
func (r *PostgresOrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders ORDER BY created_at DESC, id DESC", orderColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list orders")
		return nil, apperrors.NewStoreError("list orders", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list orders", err)
	}

	r.logger.WithField("count", len(orders)).Debug("Orders listed")
	return orders, nil
}

// GetByID retrieves an order by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.WithError(err).WithField("order_id", id).Error("Failed to fetch order")
		return nil, apperrors.NewStoreError("get order", err)
	}

	return order, nil
}

// Update applies only the fields present in req, in one atomic statement.
// Absent fields are left untouched; a present-but-null notes field clears the
// column.
func (r *PostgresOrderRepository) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	r.logger.WithField("order_id", id).Debug("Updating order")

	set := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	args = append(args, id)

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.HasStatus {
		add("status", req.Status)
	}
	if req.HasItems {
		itemsJSON, err := json.Marshal(req.Items)
		if err != nil {
			return nil, apperrors.NewStoreError("marshal items", err)
		}
		add("items", string(itemsJSON))
	}
	if req.HasCustomerName {
		add("customer_name", req.CustomerName)
	}
	if req.HasPickupTime {
		add("pickup_time", req.PickupTime)
	}
	if req.HasNotes {
		add("notes", req.Notes)
	}
	if req.HasTotalPrice {
		add("total_price", req.TotalPrice)
	}

	if len(set) == 0 {
		return nil, apperrors.NewValidationError("body", "no fields to update")
	}

	query := fmt.Sprintf(
		"UPDATE orders SET %s WHERE id = $1 RETURNING %s",
		strings.Join(set, ", "), orderColumns,
	)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.WithError(err).WithField("order_id", id).Error("Failed to update order")
		return nil, apperrors.NewStoreError("update order", err)
	}

	r.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("Order updated")

	return order, nil
}

// Delete physically removes the row. There is no soft delete; the returned
// order is the staff member's only confirmation copy.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (*models.Order, error) {
	query := fmt.Sprintf("DELETE FROM orders WHERE id = $1 RETURNING %s", orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.WithError(err).WithField("order_id", id).Error("Failed to delete order")
		return nil, apperrors.NewStoreError("delete order", err)
	}

	r.logger.WithField("order_id", id).Info("Order deleted")
	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON []byte
	var notes sql.NullString

	err := row.Scan(
		&order.ID,
		&itemsJSON,
		&order.PickupTime,
		&order.CustomerName,
		&notes,
		&order.TotalPrice,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if notes.Valid {
		order.Notes = &notes.String
	}

	return &order, nil
}
