package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"library/models"
)

const metricsNamespace = "library"

type Metrics struct {
	// Labels: method, route, status
	RequestsTotal *prometheus.CounterVec

	// Labels: method, route
	RequestDuration *prometheus.HistogramVec

	handler http.Handler
}

// NewMetrics registers the HTTP metrics and a gauge reporting the number of
// books held by library.
func NewMetrics(registry *prometheus.Registry, library models.Library) *Metrics {
	factory := promauto.With(registry)

	metrics := &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if library != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "books",
			Help:      "Number of books currently stored.",
		}, func() float64 {
			return float64(library.Len())
		})
	}

	return metrics
}

func (metrics *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (metrics *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(metrics.handler)
}
