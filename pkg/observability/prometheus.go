package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Operation metrics fed through the Metrics interface
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

var _ Metrics = (*Collector)(nil)

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry so tests can create as many as they need.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of counted operation events",
		},
		[]string{"metric", "label"},
	)

	operationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"metric", "label"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		operations,
		operationDuration,
	)

	return &Collector{
		registry:          registry,
		HTTPRequests:      httpRequests,
		HTTPDuration:      httpDuration,
		Operations:        operations,
		OperationDuration: operationDuration,
	}
}

// StartTimer observes the elapsed time when stopped
func (c *Collector) StartTimer(metric, label string) Timer {
	start := time.Now()
	return &onceTimer{stop: func() {
		c.OperationDuration.WithLabelValues(metric, label).Observe(time.Since(start).Seconds())
	}}
}

// Increment adds one to the metric/label counter
func (c *Collector) Increment(metric, label string) {
	c.Operations.WithLabelValues(metric, label).Inc()
}

// RecordHTTPRequest records a served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
