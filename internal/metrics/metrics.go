// Package metrics holds the Prometheus collectors for the search service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeError       = "error"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	SearchSeconds      prometheus.Histogram
	SearchMatches      prometheus.Histogram
	FilesScannedTotal  prometheus.Counter
	ParseFailuresTotal prometheus.Counter
}

// Default registers the collectors with the default Prometheus registry.
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates and registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcriptsearch_searches_total",
				Help: "Total search requests by outcome",
			},
			[]string{"outcome"},
		),
		SearchSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transcriptsearch_search_seconds",
				Help:    "Time spent scanning the corpus for one search",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
		SearchMatches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transcriptsearch_search_matches",
				Help:    "Total matching segments per search, before pagination",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		FilesScannedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transcriptsearch_files_scanned_total",
				Help: "Corpus files read and filtered",
			},
		),
		ParseFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transcriptsearch_parse_failures_total",
				Help: "Corpus files skipped because their content could not be parsed",
			},
		),
	}
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(outcome string, dur time.Duration, matches int) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.SearchSeconds.Observe(dur.Seconds())
		m.SearchMatches.Observe(float64(matches))
	}
}

// FileScanned counts one corpus file read and filtered.
func (m *Metrics) FileScanned() {
	if m == nil {
		return
	}
	m.FilesScannedTotal.Inc()
}

// ParseFailed counts one corpus file skipped for malformed content.
func (m *Metrics) ParseFailed() {
	if m == nil {
		return
	}
	m.ParseFailuresTotal.Inc()
}
