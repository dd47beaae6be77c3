package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch(OutcomeOK, 20*time.Millisecond, 30)
	m.ObserveSearch(OutcomeOK, 10*time.Millisecond, 0)
	m.ObserveSearch(OutcomeClientError, 0, 0)
	m.FileScanned()
	m.FileScanned()
	m.ParseFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(OutcomeClientError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesScannedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseFailuresTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch(OutcomeError, time.Second, 1)
		m.FileScanned()
		m.ParseFailed()
	})
}
