package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/auth/login: the shared-password check that latches
// staff mode on via an HTTP-only cookie.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.gate.CheckPassword(req.Password); err != nil {
		h.logger.Warn("Failed staff login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	h.gate.IssueCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles POST /api/auth/logout.
func (h *Handlers) Logout(c *gin.Context) {
	h.gate.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
