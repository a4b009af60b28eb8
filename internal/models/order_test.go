package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderRequest_PresenceTracking(t *testing.T) {
	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status": "Completato"}`), &req))

	assert.True(t, req.HasStatus)
	require.NotNil(t, req.Status)
	assert.Equal(t, OrderStatusCompleted, *req.Status)

	assert.False(t, req.HasItems)
	assert.False(t, req.HasCustomerName)
	assert.False(t, req.HasPickupTime)
	assert.False(t, req.HasNotes)
	assert.False(t, req.HasTotalPrice)
}

func TestUpdateOrderRequest_NullClearsNotes(t *testing.T) {
	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null}`), &req))

	// Present-but-null is a deliberate clear, distinct from an absent key.
	assert.True(t, req.HasNotes)
	assert.Nil(t, req.Notes)
}

func TestUpdateOrderRequest_Empty(t *testing.T) {
	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"customerName": "Luigi"}`), &req))
	assert.False(t, req.Empty())
}

func TestUpdateOrderRequest_AllFields(t *testing.T) {
	body := `{
		"status": "In attesa",
		"items": [{"productName": "Focaccia", "variant": "Bianca", "quantity": 0.5, "unit": "kg", "price": 6.00}],
		"customerName": "Luigi",
		"pickupTime": "11:00",
		"notes": "tagliata a metà",
		"totalPrice": 6.00
	}`

	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.HasStatus)
	assert.True(t, req.HasItems)
	assert.True(t, req.HasCustomerName)
	assert.True(t, req.HasPickupTime)
	assert.True(t, req.HasNotes)
	assert.True(t, req.HasTotalPrice)

	require.Len(t, req.Items, 1)
	assert.Equal(t, UnitKilograms, req.Items[0].Unit)
	assert.Equal(t, 0.5, req.Items[0].Quantity)
	require.NotNil(t, req.Notes)
	assert.Equal(t, "tagliata a metà", *req.Notes)
}

func TestUpdateOrderRequest_BadType(t *testing.T) {
	var req UpdateOrderRequest
	err := json.Unmarshal([]byte(`{"totalPrice": "not a number"}`), &req)
	assert.Error(t, err)
}

func TestOrderJSON_CamelCaseKeys(t *testing.T) {
	order := Order{
		ID:           1,
		Items:        []OrderItem{{ProductName: "Calzone", Variant: "Carne", Quantity: 1, Unit: UnitPieces, Price: 3.50}},
		PickupTime:   "12:00",
		CustomerName: "Mario",
		TotalPrice:   3.50,
		Status:       OrderStatusPending,
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{`"pickupTime"`, `"customerName"`, `"totalPrice"`, `"createdAt"`, `"productName"`} {
		assert.Contains(t, s, key)
	}
	// Notes are explicit null when unset, not omitted.
	assert.Contains(t, s, `"notes":null`)
	assert.Contains(t, s, `"status":"In attesa"`)
}
