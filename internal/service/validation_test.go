package service

import (
	"testing"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

func defaultShop() config.ShopConfig {
	return config.ShopConfig{OpenHour: 9, OpenMinute: 0, CloseHour: 18, CloseMinute: 0}
}

func validCreateRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Items: []models.OrderItem{
			{ProductName: "Panzerotto", Variant: "Carne", Quantity: 2, Unit: models.UnitPieces, Price: 5.00},
		},
		PickupTime:   "10:30",
		CustomerName: "Mario",
		TotalPrice:   5.00,
	}
}

func TestValidatePickupWindow_Boundaries(t *testing.T) {
	tests := []struct {
		pickupTime  string
		shouldError bool
	}{
		{"08:59", true},
		{"09:00", false},
		{"09:01", false},
		{"12:00", false},
		{"17:59", false},
		{"18:00", false},
		{"18:01", true},
		{"19:00", true},
		{"00:00", true},
		{"23:59", true},
	}

	for _, tt := range tests {
		t.Run(tt.pickupTime, func(t *testing.T) {
			err := ValidatePickupWindow(tt.pickupTime, defaultShop())
			if tt.shouldError && err == nil {
				t.Errorf("expected %s to be rejected", tt.pickupTime)
			}
			if !tt.shouldError && err != nil {
				t.Errorf("expected %s to be accepted, got %v", tt.pickupTime, err)
			}
		})
	}
}

func TestValidatePickupWindow_Malformed(t *testing.T) {
	tests := []string{"", "10", "10:", ":30", "ab:cd", "25:00", "10:75", "10.30"}

	for _, pickupTime := range tests {
		t.Run(pickupTime, func(t *testing.T) {
			err := ValidatePickupWindow(pickupTime, defaultShop())
			if err == nil {
				t.Errorf("expected malformed time %q to be rejected", pickupTime)
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
		})
	}
}

func TestValidateCreateOrderRequest(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.CreateOrderRequest)
		shouldError bool
	}{
		{"valid request", func(r *models.CreateOrderRequest) {}, false},
		{"empty items", func(r *models.CreateOrderRequest) { r.Items = nil }, true},
		{"missing pickup time", func(r *models.CreateOrderRequest) { r.PickupTime = "" }, true},
		{"pickup before opening", func(r *models.CreateOrderRequest) { r.PickupTime = "08:59" }, true},
		{"pickup after closing", func(r *models.CreateOrderRequest) { r.PickupTime = "18:01" }, true},
		{"pickup at opening", func(r *models.CreateOrderRequest) { r.PickupTime = "09:00" }, false},
		{"pickup at closing", func(r *models.CreateOrderRequest) { r.PickupTime = "18:00" }, false},
		{"missing customer name is fine", func(r *models.CreateOrderRequest) { r.CustomerName = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			err := ValidateCreateOrderRequest(req, defaultShop())
			if tt.shouldError && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateUpdateOrderRequest_EmptyPatch(t *testing.T) {
	err := ValidateUpdateOrderRequest(&models.UpdateOrderRequest{}, defaultShop(), false)
	if err == nil {
		t.Fatal("expected an empty patch to be rejected")
	}
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation error, got %T", err)
	}
}

func TestValidateUpdateOrderRequest_LenientByDefault(t *testing.T) {
	// The source system never re-validated updates; by default a pickup time
	// outside the window and a status revert both pass.
	outside := "23:00"
	pending := models.OrderStatusPending
	req := &models.UpdateOrderRequest{
		PickupTime:    &outside,
		HasPickupTime: true,
		Status:        &pending,
		HasStatus:     true,
	}

	if err := ValidateUpdateOrderRequest(req, defaultShop(), false); err != nil {
		t.Fatalf("lenient mode should accept any overwrite, got %v", err)
	}
}

func TestValidateUpdateOrderRequest_Strict(t *testing.T) {
	outside := "23:00"
	bogus := models.OrderStatus("Sconosciuto")

	tests := []struct {
		name        string
		req         *models.UpdateOrderRequest
		shouldError bool
	}{
		{
			"pickup outside window",
			&models.UpdateOrderRequest{PickupTime: &outside, HasPickupTime: true},
			true,
		},
		{
			"unknown status",
			&models.UpdateOrderRequest{Status: &bogus, HasStatus: true},
			true,
		},
		{
			"emptied items",
			&models.UpdateOrderRequest{Items: []models.OrderItem{}, HasItems: true},
			true,
		},
		{
			"valid completion",
			func() *models.UpdateOrderRequest {
				s := models.OrderStatusCompleted
				return &models.UpdateOrderRequest{Status: &s, HasStatus: true}
			}(),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateOrderRequest(tt.req, defaultShop(), true)
			if tt.shouldError && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParsePickupTime(t *testing.T) {
	h, m, err := ParsePickupTime("10:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != 10 || m != 30 {
		t.Errorf("expected 10:30, got %d:%d", h, m)
	}
}
