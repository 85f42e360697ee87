// Package metrics defines the Prometheus metric collectors used by the
// build and query pipelines and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the tool.
type Metrics struct {
	DocsIndexedTotal  prometheus.Counter
	TermsIndexed      prometheus.Gauge
	IndexBytesWritten *prometheus.CounterVec
	QueriesTotal      *prometheus.CounterVec
	QueryLatency      prometheus.Histogram
	QueryResultsCount prometheus.Histogram
	CacheHitsTotal    prometheus.Counter
	CacheMissesTotal  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invindex_docs_indexed_total",
				Help: "Total documents consumed by the index builder.",
			},
		),
		TermsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invindex_terms",
				Help: "Number of distinct terms in the built index.",
			},
		),
		IndexBytesWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invindex_index_bytes_written_total",
				Help: "Bytes written to persisted index files by storage policy.",
			},
			[]string{"policy"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invindex_queries_total",
				Help: "Total queries executed by result type (hit, zero_result).",
			},
			[]string{"result_type"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "invindex_query_latency_seconds",
				Help:    "Query execution latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		QueryResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "invindex_query_results_count",
				Help:    "Number of document ids returned per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invindex_cache_hits_total",
				Help: "Total number of query cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invindex_cache_misses_total",
				Help: "Total number of query cache misses.",
			},
		),
	}

	prometheus.MustRegister(
		m.DocsIndexedTotal,
		m.TermsIndexed,
		m.IndexBytesWritten,
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
