package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/config"
)

// cookieValue is the whole session state: a binary staff-mode latch. There is
// no token, expiry, or per-user identity; hardening this is an explicit
// non-goal while the stakes are a bakery order queue.
const cookieValue = "true"

// Gate is the shared-password check in front of the staff dashboard.
type Gate struct {
	password     string
	passwordHash string
	cookieName   string
	logger       *logrus.Entry
}

// NewGate creates the access gate from config. When a bcrypt hash is
// configured it wins over the plain password.
func NewGate(cfg config.AuthConfig, logger *logrus.Entry) *Gate {
	return &Gate{
		password:     cfg.StaffPassword,
		passwordHash: cfg.StaffPasswordHash,
		cookieName:   cfg.CookieName,
		logger:       logger.WithField("component", "access-gate"),
	}
}

// CheckPassword compares the submitted password against the configured
// secret, in constant time.
func (g *Gate) CheckPassword(password string) error {
	if g.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)); err != nil {
			return apperrors.ErrInvalidCredentials
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(g.password), []byte(password)) != 1 {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// IssueCookie latches staff mode on for this browser.
func (g *Gate) IssueCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     g.cookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearCookie latches staff mode off.
func (g *Gate) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Authenticated reports whether the staff cookie is present. Presence is the
// whole check; the cookie carries no token to verify.
func (g *Gate) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(g.cookieName)
	return err == nil && cookie.Value != ""
}

// RequireStaff is the routing filter for the dashboard path prefix:
// unauthenticated requests are redirected to the login page.
func (g *Gate) RequireStaff(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Authenticated(c.Request) {
			g.logger.WithField("path", c.Request.URL.Path).Debug("Redirecting to login")
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
