// Package metrics defines the Prometheus collectors for the indexing pipeline
// and the query engine, and exposes an HTTP handler for scraping.
//
// Every method on *Metrics is safe to call on a nil receiver, so callers that
// do not collect metrics pass nil instead of a stub.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Skip reasons used as the "reason" label of files_skipped_total.
const (
	ReasonTooLarge    = "too_large"
	ReasonUnsupported = "unsupported"
	ReasonFailed      = "extraction_failed"
	ReasonUnreadable  = "unreadable"
)

// Search outcomes used as the "result" label of search_queries_total.
const (
	ResultHit      = "hit"
	ResultZero     = "zero_result"
	ResultNoTerms  = "no_terms"
	ResultNotFound = "not_indexed"
	ResultError    = "error"
)

// Metrics holds the seroost collectors.
type Metrics struct {
	DocsIndexedTotal   prometheus.Counter
	FilesSkippedTotal  *prometheus.CounterVec
	IndexRunsTotal     *prometheus.CounterVec
	IndexDuration      prometheus.Histogram
	IndexDocuments     prometheus.Gauge
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seroost_docs_indexed_total",
				Help: "Total documents added to an index.",
			},
		),
		FilesSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seroost_files_skipped_total",
				Help: "Files left out of the index by reason (too_large, unsupported, extraction_failed, unreadable).",
			},
			[]string{"reason"},
		),
		IndexRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seroost_index_runs_total",
				Help: "Indexing runs by status (ok, error, cancelled).",
			},
			[]string{"status"},
		),
		IndexDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seroost_index_duration_seconds",
				Help:    "Wall time of a full indexing run in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "seroost_index_documents",
				Help: "Documents in the most recently built or loaded index.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seroost_search_queries_total",
				Help: "Search queries by result (hit, zero_result, no_terms, not_indexed, error).",
			},
			[]string{"result"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seroost_search_latency_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seroost_search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seroost_cache_hits_total",
				Help: "Query cache hits in serve mode.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seroost_cache_misses_total",
				Help: "Query cache misses in serve mode.",
			},
		),
		gatherer: g,
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.FilesSkippedTotal,
		m.IndexRunsTotal,
		m.IndexDuration,
		m.IndexDocuments,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the scrape handler for m's registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// DocumentIndexed counts one document added by the aggregator.
func (m *Metrics) DocumentIndexed() {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.Inc()
}

// FileSkipped counts a file left out of the index.
func (m *Metrics) FileSkipped(reason string) {
	if m == nil {
		return
	}
	m.FilesSkippedTotal.WithLabelValues(reason).Inc()
}

// IndexRun records a finished indexing run.
func (m *Metrics) IndexRun(status string, docs int, d time.Duration) {
	if m == nil {
		return
	}
	m.IndexRunsTotal.WithLabelValues(status).Inc()
	m.IndexDuration.Observe(d.Seconds())
	if status == "ok" {
		m.IndexDocuments.Set(float64(docs))
	}
}

// IndexLoaded records the size of an index read from disk.
func (m *Metrics) IndexLoaded(docs int) {
	if m == nil {
		return
	}
	m.IndexDocuments.Set(float64(docs))
}

// SearchServed records one query.
func (m *Metrics) SearchServed(result string, results int, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchQueriesTotal.WithLabelValues(result).Inc()
	m.SearchLatency.Observe(d.Seconds())
	m.SearchResultsCount.Observe(float64(results))
}

// CacheHit counts a query answered from cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// CacheMiss counts a query that had to be computed.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}
