package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the orders service. Each
// instance owns its registry so tests can create them freely.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersCreated   prometheus.Counter
	ordersCompleted prometheus.Counter
	ordersDeleted   prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bakery_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bakery_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_orders_created_total",
			Help: "Orders accepted through the order form.",
		}),
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_orders_completed_total",
			Help: "Orders marked completed by staff.",
		}),
		ordersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_orders_deleted_total",
			Help: "Orders deleted by staff.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersCreated,
		m.ordersCompleted,
		m.ordersDeleted,
	)

	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// OrderCreated increments the created-orders counter.
func (m *Metrics) OrderCreated() { m.ordersCreated.Inc() }

// OrderCompleted increments the completed-orders counter.
func (m *Metrics) OrderCompleted() { m.ordersCompleted.Inc() }

// OrderDeleted increments the deleted-orders counter.
func (m *Metrics) OrderDeleted() { m.ordersDeleted.Inc() }
