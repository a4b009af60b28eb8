package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forno-rosati/bakery-orders-service/internal/auth"
	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/handlers"
	"github.com/forno-rosati/bakery-orders-service/internal/metrics"
)

// Server wires the router and owns the HTTP listener lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

// New builds the router and route groups.
func New(cfg *config.Config, h *handlers.Handlers, gate *auth.Gate, m *metrics.Metrics) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), m.Middleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes(gate, m)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes(gate *auth.Gate, m *metrics.Metrics) {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/metrics", gin.WrapH(m.Handler()))

	api := s.router.Group("/api")
	{
		api.POST("/auth/login", s.handlers.Login)
		api.POST("/auth/logout", s.handlers.Logout)

		api.GET("/products", s.handlers.ListProducts)

		api.GET("/orders", s.handlers.ListOrders)
		api.POST("/orders", s.handlers.CreateOrder)
		api.PATCH("/orders/:id", s.handlers.UpdateOrder)
		api.DELETE("/orders/:id", s.handlers.DeleteOrder)
	}

	// The login page stays outside the gate; everything else under /staff
	// redirects there when the cookie is absent.
	s.router.GET("/staff/login", s.handlers.StaffLoginPage)
	s.router.POST("/staff/login", s.handlers.StaffLogin)

	staff := s.router.Group("/staff", gate.RequireStaff("/staff/login"))
	{
		staff.GET("/dashboard", s.handlers.StaffDashboard)
		staff.GET("/orders/:id/ticket", s.handlers.StaffTicket)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
