package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderDeleted       EventType = "order.deleted"
)

// OrderEvent is the envelope published for every order lifecycle change.
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   int64           `json:"order_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes order lifecycle events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error
	PublishOrderDeleted(ctx context.Context, order *models.Order) error
	Close() error
}

// Ensure implementations satisfy the interface.
var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*NopPublisher)(nil)
	_ Publisher = (*MockPublisher)(nil)
)

// KafkaPublisher publishes order events to Kafka, keyed by order id so events
// for one order stay in partition order.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logrus.Entry
}

// NewKafkaPublisher creates a Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logrus.Entry) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.WithField("component", "event-publisher"),
	}
}

// PublishOrderCreated publishes an order created event.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order.ID, data))
}

// PublishOrderStatusChanged publishes a status change event.
func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error {
	payload := struct {
		Order          *models.Order      `json:"order"`
		PreviousStatus models.OrderStatus `json:"previous_status"`
		NewStatus      models.OrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previous,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderStatusChanged, order.ID, data))
}

// PublishOrderDeleted publishes an order deleted event carrying the final
// snapshot of the removed row.
func (p *KafkaPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderDeleted, order.ID, data))
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": event.Type,
			"order_id":   event.OrderID,
		}).Error("Failed to publish event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"order_id":   event.OrderID,
	}).Info("Event published")

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newEvent(eventType EventType, orderID int64, data []byte) *OrderEvent {
	return &OrderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   orderID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NopPublisher is wired when FEATURE_ORDER_EVENTS is off.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *models.Order) error {
	return nil
}

func (NopPublisher) PublishOrderStatusChanged(context.Context, *models.Order, models.OrderStatus) error {
	return nil
}

func (NopPublisher) PublishOrderDeleted(context.Context, *models.Order) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// MockPublisher records events for tests.
type MockPublisher struct {
	Events []*OrderEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*OrderEvent, 0)}
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	m.Events = append(m.Events, &OrderEvent{Type: EventTypeOrderCreated, OrderID: order.ID})
	return nil
}

func (m *MockPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error {
	m.Events = append(m.Events, &OrderEvent{Type: EventTypeOrderStatusChanged, OrderID: order.ID})
	return nil
}

func (m *MockPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) error {
	m.Events = append(m.Events, &OrderEvent{Type: EventTypeOrderDeleted, OrderID: order.ID})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
