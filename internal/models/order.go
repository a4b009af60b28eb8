package models

import (
	"encoding/json"
	"time"
)

// OrderStatus is the lifecycle state of an order. The values are the
// Italian labels the shop staff see on their tickets.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "In attesa"
	OrderStatusCompleted OrderStatus = "Completato"
)

// Unit is how a line item quantity is measured.
type Unit string

const (
	UnitPieces    Unit = "pezzi"
	UnitKilograms Unit = "kg"
)

// DefaultCustomerName is used when the order form omits a name.
const DefaultCustomerName = "Cliente"

// OrderItem is one product/variant/quantity tuple within an order.
// Quantity is a float because kilogram quantities are fractional.
type OrderItem struct {
	ProductName string  `json:"productName"`
	Variant     string  `json:"variant"`
	Quantity    float64 `json:"quantity"`
	Unit        Unit    `json:"unit"`
	Price       float64 `json:"price"`
}

// Order is a customer's submitted pickup request. Items are persisted as a
// JSON text column; the repository handles the (de)serialization so callers
// always see the structured slice.
type Order struct {
	ID           int64       `json:"id"`
	Items        []OrderItem `json:"items"`
	PickupTime   string      `json:"pickupTime"`
	CustomerName string      `json:"customerName"`
	Notes        *string     `json:"notes"`
	TotalPrice   float64     `json:"totalPrice"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// CreateOrderRequest is the order form submission.
type CreateOrderRequest struct {
	Items        []OrderItem `json:"items"`
	PickupTime   string      `json:"pickupTime"`
	CustomerName string      `json:"customerName"`
	Notes        *string     `json:"notes"`
	TotalPrice   float64     `json:"totalPrice"`
}

// UpdateOrderRequest is a partial update. Field presence is tracked
// explicitly: only keys present in the request body are applied, so
// `{"notes": null}` clears the notes while an absent key leaves them alone.
type UpdateOrderRequest struct {
	Status       *OrderStatus
	Items        []OrderItem
	CustomerName *string
	PickupTime   *string
	Notes        *string
	TotalPrice   *float64

	HasStatus       bool
	HasItems        bool
	HasCustomerName bool
	HasPickupTime   bool
	HasNotes        bool
	HasTotalPrice   bool
}

// Empty reports whether the request touches no fields.
func (r *UpdateOrderRequest) Empty() bool {
	return !r.HasStatus && !r.HasItems && !r.HasCustomerName &&
		!r.HasPickupTime && !r.HasNotes && !r.HasTotalPrice
}

// UnmarshalJSON decodes against the raw key set so presence survives the
// round trip.
func (r *UpdateOrderRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["status"]; ok {
		r.HasStatus = true
		if err := json.Unmarshal(v, &r.Status); err != nil {
			return err
		}
	}
	if v, ok := raw["items"]; ok {
		r.HasItems = true
		if err := json.Unmarshal(v, &r.Items); err != nil {
			return err
		}
	}
	if v, ok := raw["customerName"]; ok {
		r.HasCustomerName = true
		if err := json.Unmarshal(v, &r.CustomerName); err != nil {
			return err
		}
	}
	if v, ok := raw["pickupTime"]; ok {
		r.HasPickupTime = true
		if err := json.Unmarshal(v, &r.PickupTime); err != nil {
			return err
		}
	}
	if v, ok := raw["notes"]; ok {
		r.HasNotes = true
		if err := json.Unmarshal(v, &r.Notes); err != nil {
			return err
		}
	}
	if v, ok := raw["totalPrice"]; ok {
		r.HasTotalPrice = true
		if err := json.Unmarshal(v, &r.TotalPrice); err != nil {
			return err
		}
	}

	return nil
}
