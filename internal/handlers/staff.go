package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forno-rosati/bakery-orders-service/internal/dashboard"
)

const loginPage = `<!doctype html>
<html lang="it">
<head><meta charset="utf-8"><title>Accesso Staff</title></head>
<body>
  <h1>Accesso Staff</h1>
  %s
  <form method="post" action="/staff/login">
    <input type="password" name="password" placeholder="Password" autofocus>
    <button type="submit">Entra</button>
  </form>
</body>
</html>`

// StaffLoginPage handles GET /staff/login.
func (h *Handlers) StaffLoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(loginPage, "")))
}

// StaffLogin handles the login form POST. On success the staff cookie is set
// and the browser lands on the dashboard.
func (h *Handlers) StaffLogin(c *gin.Context) {
	if err := h.gate.CheckPassword(c.PostForm("password")); err != nil {
		h.logger.Warn("Failed staff login attempt")
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf(loginPage, "<p>Password errata</p>")))
		return
	}

	h.gate.IssueCookie(c)
	c.Redirect(http.StatusFound, "/staff/dashboard")
}

// StaffDashboard handles GET /staff/dashboard: the print-friendly queue
// summary, sorted by pickup time. The richer live view is the terminal
// dashboard client.
func (h *Handlers) StaffDashboard(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	queue := dashboard.SortByPickupTime(orders)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(dashboard.RenderSummary(queue)))
}

// StaffTicket handles GET /staff/orders/:id/ticket: the monospace pickup
// ticket for one order.
func (h *Handlers) StaffTicket(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(dashboard.RenderTicket(order)))
}
