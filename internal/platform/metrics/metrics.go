package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ValidationErrors  *prometheus.CounterVec
	CrossTierRequests *prometheus.CounterVec
	NoticeRuns        *prometheus.CounterVec
	NoticesDispatched *prometheus.CounterVec
	NoticeRunDuration prometheus.Histogram
	NoticeCandidates  prometheus.Gauge
}

// New creates and registers all metrics with reg. Passing nil registers with
// the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docflow_validation_errors_total",
			Help: "Validation errors emitted by document rules, by code",
		}, []string{"code"}),
		CrossTierRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docflow_cross_tier_requests_total",
			Help: "Cross-tier requests handled, by request type and outcome",
		}, []string{"type", "outcome"}),
		NoticeRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docflow_notice_runs_total",
			Help: "Partner notice job runs, by outcome",
		}, []string{"outcome"}),
		NoticesDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docflow_notices_dispatched_total",
			Help: "Partner notices handed to the mail gateway, by outcome",
		}, []string{"outcome"}),
		NoticeRunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "docflow_notice_run_duration_seconds",
			Help:    "Wall time of one partner notice job run",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		NoticeCandidates: factory.NewGauge(prometheus.GaugeOpts{
			Name: "docflow_notice_candidates",
			Help: "Candidates resolved by the last partner notice run",
		}),
	}
}

// IncrementValidationError counts one emitted validation error.
func (m *Metrics) IncrementValidationError(code string) {
	if m == nil {
		return
	}
	m.ValidationErrors.WithLabelValues(code).Inc()
}

// ObserveCrossTierRequest counts one handled cross-tier request.
func (m *Metrics) ObserveCrossTierRequest(requestType string, ok bool) {
	if m == nil {
		return
	}
	m.CrossTierRequests.WithLabelValues(requestType, outcome(ok)).Inc()
}

// ObserveNoticeRun records the outcome and duration of one job run.
func (m *Metrics) ObserveNoticeRun(result string, resolved int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.NoticeRuns.WithLabelValues(result).Inc()
	m.NoticeRunDuration.Observe(elapsed.Seconds())
	m.NoticeCandidates.Set(float64(resolved))
}

// ObserveDispatch counts one notice dispatch attempt.
func (m *Metrics) ObserveDispatch(result string) {
	if m == nil {
		return
	}
	m.NoticesDispatched.WithLabelValues(result).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
