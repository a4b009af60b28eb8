package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

func sampleOrder(id int64, pickupTime string, status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:           id,
		Items:        []models.OrderItem{{ProductName: "Panzerotto", Variant: "Carne", Quantity: 2, Unit: models.UnitPieces, Price: 5.00}},
		PickupTime:   pickupTime,
		CustomerName: "Mario",
		TotalPrice:   5.00,
		Status:       status,
		CreatedAt:    time.Date(2026, 8, 27, 9, 15, 0, 0, time.UTC),
	}
}

func TestPending(t *testing.T) {
	orders := []*models.Order{
		sampleOrder(1, "10:00", models.OrderStatusPending),
		sampleOrder(2, "11:00", models.OrderStatusCompleted),
		sampleOrder(3, "12:00", models.OrderStatusPending),
	}

	pending := Pending(orders)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(1), pending[0].ID)
	assert.Equal(t, int64(3), pending[1].ID)
}

func TestSortByPickupTime(t *testing.T) {
	orders := []*models.Order{
		sampleOrder(1, "16:00", models.OrderStatusPending),
		sampleOrder(2, "09:30", models.OrderStatusPending),
		sampleOrder(3, "12:00", models.OrderStatusPending),
		sampleOrder(4, "09:30", models.OrderStatusPending),
	}

	sorted := SortByPickupTime(orders)
	require.Len(t, sorted, 4)
	assert.Equal(t, int64(2), sorted[0].ID)
	assert.Equal(t, int64(4), sorted[1].ID) // same pickup, id breaks the tie
	assert.Equal(t, int64(3), sorted[2].ID)
	assert.Equal(t, int64(1), sorted[3].ID)

	// The input slice is left untouched.
	assert.Equal(t, int64(1), orders[0].ID)
}

func TestSortByID(t *testing.T) {
	orders := []*models.Order{
		sampleOrder(3, "10:00", models.OrderStatusPending),
		sampleOrder(1, "11:00", models.OrderStatusPending),
	}

	sorted := SortByID(orders)
	assert.Equal(t, int64(1), sorted[0].ID)
	assert.Equal(t, int64(3), sorted[1].ID)
}

func TestRenderTicket(t *testing.T) {
	order := sampleOrder(7, "10:30", models.OrderStatusPending)
	notes := "senza cipolla"
	order.Notes = &notes

	ticket := RenderTicket(order)

	assert.Contains(t, ticket, "Ordine #7")
	assert.Contains(t, ticket, "CLIENTE: Mario")
	assert.Contains(t, ticket, "RITIRO:  10:30")
	assert.Contains(t, ticket, "Panzerotto")
	assert.Contains(t, ticket, "Carne")
	assert.Contains(t, ticket, "2 pezzi")
	assert.Contains(t, ticket, "NOTE: senza cipolla")
	assert.Contains(t, ticket, "TOTALE: 5.00 EUR")
}

func TestRenderTicket_NoNotes(t *testing.T) {
	ticket := RenderTicket(sampleOrder(1, "10:30", models.OrderStatusPending))
	assert.NotContains(t, ticket, "NOTE:")
}

func TestRenderSummary(t *testing.T) {
	orders := []*models.Order{
		sampleOrder(1, "10:00", models.OrderStatusPending),
		sampleOrder(2, "11:00", models.OrderStatusCompleted),
	}

	summary := RenderSummary(orders)

	assert.Contains(t, summary, "Riepilogo Ordini")
	assert.Contains(t, summary, "Totali: 2  Completati: 1  In Attesa: 1")
	assert.Contains(t, summary, "Mario")
	assert.Contains(t, summary, "Panzerotto Carne x2")
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", formatQuantity(2))
	assert.Equal(t, "0.50", formatQuantity(0.5))
	assert.Equal(t, "1.25", formatQuantity(1.25))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 20))
	long := strings.Repeat("a", 30)
	got := truncate(long, 20)
	assert.Len(t, []rune(got), 20)
	assert.True(t, strings.HasSuffix(got, "…"))
}
