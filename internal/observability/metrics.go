package observability

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Upstream provider call rate by provider (geocoding, forecast, alerts).
	// Watch for: error vs success ratio per provider.
	UpstreamCallsTotal *prometheus.CounterVec

	// Upstream latency per call. Watch for: p95 > 2s (provider degradation).
	UpstreamDuration *prometheus.HistogramVec

	// Query pipeline outcomes: answered, no_place, place_not_found, upstream_error.
	QueryOutcomesTotal *prometheus.CounterVec

	// Total pipeline queries. rate() for QPS.
	QueriesTotal prometheus.Counter

	// Per-place query count (allow-list; others go to "other").
	QueriesByPlaceTotal *prometheus.CounterVec

	// Tool contract invocations by tool name and result.
	ToolInvocationsTotal *prometheus.CounterVec

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// trackedPlaces is built from config; used to resolve the place label.
	trackedPlacesMu sync.RWMutex
	trackedPlaces   map[string]struct{}
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstreamCallsTotal",
			Help: "Total number of upstream provider API calls",
		},
		[]string{"provider", "status"},
	)
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstreamDurationSeconds",
			Help:    "Upstream provider API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "status"},
	)
	QueryOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queryOutcomesTotal",
			Help: "Query pipeline outcomes (answered, no_place, place_not_found, upstream_error)",
		},
		[]string{"outcome"},
	)
	QueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queriesTotal",
			Help: "Total number of natural-language weather queries",
		},
	)
	QueriesByPlaceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queriesByPlaceTotal",
			Help: "Queries by resolved place (allow-list; others use place=other)",
		},
		[]string{"place"},
	)
	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolInvocationsTotal",
			Help: "Tool contract invocations by tool name and result",
		},
		[]string{"tool", "result"},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		UpstreamCallsTotal, UpstreamDuration,
		QueryOutcomesTotal, QueriesTotal, QueriesByPlaceTotal,
		ToolInvocationsTotal,
		RateLimitDeniedTotal,
	)
}

// SetTrackedPlaces sets the allow-list for place metrics. Non-tracked places increment "other".
func SetTrackedPlaces(places []string) {
	trackedPlacesMu.Lock()
	defer trackedPlacesMu.Unlock()
	trackedPlaces = make(map[string]struct{}, len(places))
	for _, p := range places {
		trackedPlaces[normalizePlaceForMetrics(p)] = struct{}{}
	}
}

// RecordPlace records a resolved place against the tracked-place allow-list.
func RecordPlace(place string) {
	p := normalizePlaceForMetrics(place)
	trackedPlacesMu.RLock()
	_, ok := trackedPlaces[p] // nil map read is safe in Go
	trackedPlacesMu.RUnlock()
	if ok {
		QueriesByPlaceTotal.WithLabelValues(p).Inc()
	} else {
		QueriesByPlaceTotal.WithLabelValues("other").Inc()
	}
}

// RecordUpstreamCall records one upstream API call with its latency.
func RecordUpstreamCall(provider, status string, seconds float64) {
	UpstreamCallsTotal.WithLabelValues(provider, status).Inc()
	UpstreamDuration.WithLabelValues(provider, status).Observe(seconds)
}

func normalizePlaceForMetrics(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
