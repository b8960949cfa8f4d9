package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementValidationError("country_required")
	m.IncrementValidationError("country_required")
	m.ObserveCrossTierRequest("department", false)
	m.ObserveNoticeRun("success", 3, 2*time.Second)
	m.ObserveDispatch("sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationErrors.WithLabelValues("country_required")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossTierRequests.WithLabelValues("department", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NoticeRuns.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NoticeCandidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NoticesDispatched.WithLabelValues("sent")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementValidationError("x")
		m.ObserveCrossTierRequest("x", true)
		m.ObserveNoticeRun("x", 0, time.Second)
		m.ObserveDispatch("x")
	})
}
