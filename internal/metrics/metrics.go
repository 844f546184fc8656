package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for taskboard. Each collector owns
// its registry, so servers and tests never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// GraphQL server metrics
	GraphQLOperations *prometheus.CounterVec

	// Client metrics
	ClientRequests *prometheus.CounterVec
	ClientDuration *prometheus.HistogramVec

	// View metrics
	DashboardPolls *prometheus.CounterVec
}

// NewCollector creates a collector with every metric registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GraphQLOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_operations_total",
				Help: "Total number of GraphQL operations executed by the server",
			},
			[]string{"operation", "status"},
		),
		ClientRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "client_requests_total",
				Help: "Total number of GraphQL requests sent by the client",
			},
			[]string{"operation", "status"},
		),
		ClientDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "client_request_duration_seconds",
				Help:    "GraphQL client request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DashboardPolls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_polls_total",
				Help: "Total number of dashboard fetches by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.GraphQLOperations,
		c.ClientRequests,
		c.ClientDuration,
		c.DashboardPolls,
	)

	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGraphQLOperation records one executed operation.
func (c *Collector) RecordGraphQLOperation(operation string, err bool) {
	c.GraphQLOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

// RecordClientRequest records one client round trip.
func (c *Collector) RecordClientRequest(operation string, duration time.Duration, err error) {
	c.ClientRequests.WithLabelValues(operation, statusLabel(err != nil)).Inc()
	c.ClientDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDashboardPoll records the outcome of one dashboard fetch:
// "applied", "stale" or "error".
func (c *Collector) RecordDashboardPoll(result string) {
	c.DashboardPolls.WithLabelValues(result).Inc()
}

func statusLabel(failed bool) string {
	if failed {
		return "error"
	}
	return "success"
}
