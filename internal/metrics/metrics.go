// Package metrics exposes Prometheus instrumentation for the fetch,
// cache and analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the analysis service.
type Metrics struct {
	FetchesTotal   *prometheus.CounterVec // labels: source, status
	FetchDur       prometheus.Histogram
	SourceDisabled *prometheus.GaugeVec // labels: source; 0=enabled, 1=disabled

	CacheHitsTotal   *prometheus.CounterVec // labels: backend
	CacheMissesTotal *prometheus.CounterVec // labels: backend

	AnalysisRunsTotal *prometheus.CounterVec // labels: status
	AnalysisDur       prometheus.Histogram
	SignalsTotal      *prometheus.CounterVec // labels: kind

	HTTPRequestsTotal *prometheus.CounterVec // labels: path, code
}

// NewMetrics registers all metrics on reg and returns them. Pass
// prometheus.DefaultRegisterer outside of tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_fetches_total",
			Help: "Total upstream bar fetches by source and outcome",
		}, []string{"source", "status"}),
		FetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocklens_fetch_duration_seconds",
			Help:    "Upstream fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		SourceDisabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stocklens_source_disabled",
			Help: "Whether a data source is currently disabled (1) after repeated failures",
		}, []string{"source"}),

		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_cache_hits_total",
			Help: "Series cache hits by backend",
		}, []string{"backend"}),
		CacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_cache_misses_total",
			Help: "Series cache misses by backend",
		}, []string{"backend"}),

		AnalysisRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_analysis_runs_total",
			Help: "Analysis runs by outcome",
		}, []string{"status"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocklens_analysis_duration_seconds",
			Help:    "Full indicator table computation latency",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_signals_total",
			Help: "Signals emitted by kind",
		}, []string{"kind"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_http_requests_total",
			Help: "API requests by path and status code",
		}, []string{"path", "code"}),
	}

	reg.MustRegister(
		m.FetchesTotal,
		m.FetchDur,
		m.SourceDisabled,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.AnalysisRunsTotal,
		m.AnalysisDur,
		m.SignalsTotal,
		m.HTTPRequestsTotal,
	)
	return m
}
