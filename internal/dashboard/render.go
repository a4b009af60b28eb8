package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// Pending filters out completed orders, the dashboard's default queue view.
func Pending(orders []*models.Order) []*models.Order {
	pending := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted {
			pending = append(pending, o)
		}
	}
	return pending
}

// SortByPickupTime orders the queue by pickup time, the staff default. The
// HH:MM format makes lexicographic comparison correct.
func SortByPickupTime(orders []*models.Order) []*models.Order {
	sorted := make([]*models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PickupTime == sorted[j].PickupTime {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].PickupTime < sorted[j].PickupTime
	})
	return sorted
}

// SortByID orders the queue by order id.
func SortByID(orders []*models.Order) []*models.Order {
	sorted := make([]*models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// RenderTicket formats one order as the monospace pickup ticket handed to
// the kitchen.
func RenderTicket(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ordine #%d\n", order.ID)
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "CLIENTE: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "RITIRO:  %s\n", order.PickupTime)
	fmt.Fprintf(&b, "Inviato: %s\n", order.CreatedAt.Format("15:04:05"))
	b.WriteString(strings.Repeat("-", 30) + "\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s\n  %s\n  %s %s\n", item.ProductName, item.Variant, formatQuantity(item.Quantity), item.Unit)
	}

	if order.Notes != nil && *order.Notes != "" {
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "NOTE: %s\n", *order.Notes)
	}

	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "TOTALE: %.2f EUR\n", order.TotalPrice)

	return b.String()
}

// RenderSummary formats the aggregate view: counters plus one line per order.
func RenderSummary(orders []*models.Order) string {
	var completed int
	for _, o := range orders {
		if o.Status == models.OrderStatusCompleted {
			completed++
		}
	}

	var b strings.Builder
	b.WriteString("Riepilogo Ordini\n")
	fmt.Fprintf(&b, "Totali: %d  Completati: %d  In Attesa: %d\n",
		len(orders), completed, len(orders)-completed)
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "%-5s %-20s %-7s %-12s %s\n", "ID", "Cliente", "Ritiro", "Stato", "Prodotti")

	for _, o := range orders {
		products := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			products = append(products, fmt.Sprintf("%s %s x%s", item.ProductName, item.Variant, formatQuantity(item.Quantity)))
		}
		fmt.Fprintf(&b, "%-5d %-20s %-7s %-12s %s\n",
			o.ID, truncate(o.CustomerName, 20), o.PickupTime, o.Status, strings.Join(products, "; "))
	}

	return b.String()
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
