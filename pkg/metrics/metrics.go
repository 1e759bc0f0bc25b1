// Package metrics bundles the Prometheus collectors exported by the service.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service records. A nil *Collector is valid
// and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	ArcsBuilt      prometheus.Counter
	BreaksInserted prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry returns the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightmap_http_requests_total",
		Help: "Total HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "flightmap_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightmap_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "route"}), "flightmap_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	arcs, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmap_arcs_built_total",
		Help: "Route arcs sampled for rendering.",
	}), "flightmap_arcs_built_total")
	if err != nil {
		return nil, err
	}

	breaks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmap_arc_breaks_total",
		Help: "Antimeridian breaks inserted into route arcs.",
	}), "flightmap_arc_breaks_total")
	if err != nil {
		return nil, err
	}

	hits, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmap_route_cache_hits_total",
		Help: "Parsed route lists served from the cache.",
	}), "flightmap_route_cache_hits_total")
	if err != nil {
		return nil, err
	}

	misses, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmap_route_cache_misses_total",
		Help: "Route list lookups that had to parse the log.",
	}), "flightmap_route_cache_misses_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		HTTPRequests:   requests,
		HTTPDurations:  durations,
		ArcsBuilt:      arcs,
		BreaksInserted: breaks,
		CacheHits:      hits,
		CacheMisses:    misses,
	}, nil
}

// Handler exposes the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
	c.HTTPDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveArc records one built arc and the breaks it carries.
func (c *Collector) ObserveArc(breaks int) {
	if c == nil {
		return
	}
	c.ArcsBuilt.Inc()
	if breaks > 0 {
		c.BreaksInserted.Add(float64(breaks))
	}
}

// CacheHit records a route cache hit.
func (c *Collector) CacheHit() {
	if c != nil {
		c.CacheHits.Inc()
	}
}

// CacheMiss records a route cache miss.
func (c *Collector) CacheMiss() {
	if c != nil {
		c.CacheMisses.Inc()
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
