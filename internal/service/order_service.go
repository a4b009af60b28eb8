package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/events"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
	"github.com/forno-rosati/bakery-orders-service/internal/repository"
)

// OrderService owns the order lifecycle: validation on the way in, the
// pending -> completed state machine, and cache/event side effects around
// every store mutation.
type OrderService struct {
	repo      repository.OrderRepository
	cache     repository.OrderCache
	publisher events.Publisher
	config    *config.Config
	logger    *logrus.Entry
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.OrderRepository,
	cache repository.OrderCache,
	publisher events.Publisher,
	cfg *config.Config,
	logger *logrus.Entry,
) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		config:    cfg,
		logger:    logger.WithField("component", "order-service"),
	}
}

// CreateOrder validates a form submission and persists it as a pending order.
// The store stamps created_at with its own clock.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	s.logger.WithFields(logrus.Fields{
		"customer":   req.CustomerName,
		"item_count": len(req.Items),
	}).Info("Creating order")

	if err := ValidateCreateOrderRequest(req, s.config.Shop); err != nil {
		return nil, err
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = models.DefaultCustomerName
	}

	order := &models.Order{
		Items:        req.Items,
		PickupTime:   req.PickupTime,
		CustomerName: customerName,
		Notes:        req.Notes,
		TotalPrice:   req.TotalPrice,
		Status:       models.OrderStatusPending,
	}

	order, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create order")
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			// Log but don't fail
			s.logger.WithError(err).WithField("order_id", order.ID).
				Error("Failed to publish order created event")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalPrice,
	}).Info("Order created")

	return order, nil
}

// ListOrders returns all orders, newest first. The dashboard filters by
// status client-side.
func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	if s.config.Features.EnableOrderCaching {
		if orders, err := s.cache.GetList(ctx); err == nil && orders != nil {
			return orders, nil
		}
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.cache.SetList(ctx, orders); err != nil {
			s.logger.WithError(err).Error("Failed to cache order list")
		}
	}

	return orders, nil
}

// GetOrder retrieves a single order.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateOrder applies a partial update. Only fields present in the request
// are touched; by default nothing is re-validated, preserving staff freedom
// to rewrite any field (including reverting status).
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	s.logger.WithField("order_id", id).Info("Updating order")

	if err := ValidateUpdateOrderRequest(req, s.config.Shop, s.config.Features.StrictUpdateValidation); err != nil {
		return nil, err
	}

	// The previous status is only needed for the status-changed event.
	var previous models.OrderStatus
	if s.config.Features.EnableOrderEvents && req.HasStatus {
		if current, err := s.repo.GetByID(ctx, id); err == nil {
			previous = current.Status
		}
	}

	order, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.config.Features.EnableOrderEvents && req.HasStatus && order.Status != previous {
		if err := s.publisher.PublishOrderStatusChanged(ctx, order, previous); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).
				Error("Failed to publish status change event")
		}
	}

	return order, nil
}

// DeleteOrder physically removes an order and returns the deleted record for
// confirmation.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.logger.WithField("order_id", id).Info("Deleting order")

	order, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderDeleted(ctx, order); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).
				Error("Failed to publish order deleted event")
		}
	}

	return order, nil
}

func (s *OrderService) invalidateCache(ctx context.Context) {
	if !s.config.Features.EnableOrderCaching {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to invalidate order cache")
	}
}
