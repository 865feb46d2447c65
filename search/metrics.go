package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the search service.
type Metrics struct {
	Registry            *prometheus.Registry
	SearchesTotal       prometheus.Counter
	SearchDuration      prometheus.Histogram
	SourceListingsTotal *prometheus.CounterVec
	SourceErrorsTotal   *prometheus.CounterVec
	CacheHitsTotal      prometheus.Counter
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	searches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total search requests handled.",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "End-to-end latency of search aggregation.",
			Buckets: prometheus.DefBuckets,
		},
	)
	listings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_source_listings_total",
			Help: "Raw listings contributed per marketplace.",
		},
		[]string{"site"},
	)
	sourceErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_source_errors_total",
			Help: "Source failures by marketplace and reason.",
		},
		[]string{"site", "reason"},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_cache_hits_total",
			Help: "Search responses served from the result cache.",
		},
	)

	registry.MustRegister(searches, duration, listings, sourceErrors, cacheHits)

	return &Metrics{
		Registry:            registry,
		SearchesTotal:       searches,
		SearchDuration:      duration,
		SourceListingsTotal: listings,
		SourceErrorsTotal:   sourceErrors,
		CacheHitsTotal:      cacheHits,
	}
}

// IncSearch counts one handled search request.
func (m *Metrics) IncSearch() {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
}

// ObserveDuration records one aggregation's wall time.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(d.Seconds())
}

// AddListings counts listings contributed by one source.
func (m *Metrics) AddListings(site string, n int) {
	if m == nil {
		return
	}
	m.SourceListingsTotal.WithLabelValues(site).Add(float64(n))
}

// IncSourceError counts one failed source fetch.
func (m *Metrics) IncSourceError(site, reason string) {
	if m == nil {
		return
	}
	m.SourceErrorsTotal.WithLabelValues(site, reason).Inc()
}

// IncCacheHit counts one response served from cache.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}
