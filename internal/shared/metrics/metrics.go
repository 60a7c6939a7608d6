// Package metrics collects Prometheus metrics for the API and exposes them over HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tourism"

// Recorder is the metrics surface used by the use cases.
type Recorder interface {
	RecordItineraryGenerated(identityKind string)
	RecordItineraryRateLimited()
	RecordUpstreamFailure(service string)
	RecordSessionCreated()
	RecordSessionEvicted()
}

// Collector is the Prometheus implementation of Recorder plus HTTP request metrics.
type Collector struct {
	registry *prometheus.Registry

	itinerariesGenerated *prometheus.CounterVec
	itinerariesLimited   prometheus.Counter
	upstreamFailures     *prometheus.CounterVec
	sessionsCreated      prometheus.Counter
	sessionsEvicted      prometheus.Counter
	httpRequests         *prometheus.CounterVec
	httpLatency          *prometheus.HistogramVec
}

// NewCollector creates a Collector registered on its own registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		itinerariesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_generated_total",
			Help:      "Itineraries generated and persisted, by identity kind.",
		}, []string{"identity"}),
		itinerariesLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_rate_limited_total",
			Help:      "Itinerary requests rejected by the daily quota.",
		}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Failed calls to external services.",
		}, []string{"service"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions created through the identity broker exchange.",
		}),
		sessionsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Expired sessions removed on lookup.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.itinerariesGenerated,
		c.itinerariesLimited,
		c.upstreamFailures,
		c.sessionsCreated,
		c.sessionsEvicted,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// Registry exposes the underlying registry (used by tests and the /metrics handler)
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordItineraryGenerated counts a persisted itinerary
func (c *Collector) RecordItineraryGenerated(identityKind string) {
	c.itinerariesGenerated.WithLabelValues(identityKind).Inc()
}

// RecordItineraryRateLimited counts a request rejected by the quota
func (c *Collector) RecordItineraryRateLimited() {
	c.itinerariesLimited.Inc()
}

// RecordUpstreamFailure counts a failed external call
func (c *Collector) RecordUpstreamFailure(service string) {
	c.upstreamFailures.WithLabelValues(service).Inc()
}

// RecordSessionCreated counts a new session
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordSessionEvicted counts a lazily evicted session
func (c *Collector) RecordSessionEvicted() {
	c.sessionsEvicted.Inc()
}

// Middleware records request count and latency per matched route. A panicking handler
// is counted as a 500 before the panic continues to the recover middleware.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				c.observe(ctx, fiber.StatusInternalServerError, start)
				panic(r)
			}
		}()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		c.observe(ctx, status, start)
		return err
	}
}

func (c *Collector) observe(ctx *fiber.Ctx, status int, start time.Time) {
	route := ctx.Route().Path
	c.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

// noop discards every measurement
type noop struct{}

// NewNoop returns a Recorder that records nothing
func NewNoop() Recorder { return noop{} }

func (noop) RecordItineraryGenerated(string) {}
func (noop) RecordItineraryRateLimited()     {}
func (noop) RecordUpstreamFailure(string)    {}
func (noop) RecordSessionCreated()           {}
func (noop) RecordSessionEvicted()           {}

var _ Recorder = (*Collector)(nil)
