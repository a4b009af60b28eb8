package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// ParsePickupTime parses a strict HH:MM clock value.
func ParsePickupTime(value string) (hours, minutes int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hours in %q", value)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minutes in %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", value)
	}
	return hours, minutes, nil
}

// ValidatePickupWindow checks a pickup time against the shop window.
// Boundaries are inclusive: with the default 09:00-18:00 window, 09:00 and
// 18:00 pass while 08:59 and 18:01 are rejected.
func ValidatePickupWindow(pickupTime string, shop config.ShopConfig) error {
	hours, minutes, err := ParsePickupTime(pickupTime)
	if err != nil {
		return apperrors.NewValidationError("pickupTime", err.Error())
	}

	beforeOpen := hours < shop.OpenHour ||
		(hours == shop.OpenHour && minutes < shop.OpenMinute)
	afterClose := hours > shop.CloseHour ||
		(hours == shop.CloseHour && minutes > shop.CloseMinute)

	if beforeOpen || afterClose {
		return apperrors.NewValidationError("pickupTime", fmt.Sprintf(
			"pickup time must be between %02d:%02d and %02d:%02d",
			shop.OpenHour, shop.OpenMinute, shop.CloseHour, shop.CloseMinute,
		))
	}

	return nil
}

// ValidateCreateOrderRequest validates an order form submission.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest, shop config.ShopConfig) error {
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "no items in order")
	}

	if req.PickupTime == "" {
		return apperrors.NewValidationError("pickupTime", "pickup time is required")
	}

	return ValidatePickupWindow(req.PickupTime, shop)
}

// ValidateUpdateOrderRequest validates a partial update. The base contract
// only rejects an empty patch; with strict validation on, the pickup window
// and status values are re-checked instead of trusting staff edits blindly.
func ValidateUpdateOrderRequest(req *models.UpdateOrderRequest, shop config.ShopConfig, strict bool) error {
	if req.Empty() {
		return apperrors.NewValidationError("body", "no fields to update")
	}

	if !strict {
		return nil
	}

	if req.HasStatus {
		if req.Status == nil {
			return apperrors.NewValidationError("status", "status cannot be null")
		}
		switch *req.Status {
		case models.OrderStatusPending, models.OrderStatusCompleted:
		default:
			return apperrors.NewValidationError("status", "invalid order status")
		}
	}

	if req.HasItems && len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "items cannot be emptied")
	}

	if req.HasPickupTime {
		if req.PickupTime == nil {
			return apperrors.NewValidationError("pickupTime", "pickup time cannot be null")
		}
		if err := ValidatePickupWindow(*req.PickupTime, shop); err != nil {
			return err
		}
	}

	return nil
}
