package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded by the lead endpoint.
const (
	OutcomeCreated      = "created"
	OutcomeInvalid      = "invalid"
	OutcomeUnconfigured = "unconfigured"
	OutcomeStorageError = "storage_error"
	OutcomeUnexpected   = "unexpected"
)

// LeadMetrics exposes counters/histograms for the lead submission flow.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	insertLatency    *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Name:      "submissions_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"outcome"}),
		insertLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leads",
			Name:      "insert_duration_seconds",
			Help:      "Latency of lead inserts against the storage backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.insertLatency)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveInsertLatency(backend string, seconds float64) {
	if m == nil {
		return
	}
	m.insertLatency.WithLabelValues(backend).Observe(seconds)
}
