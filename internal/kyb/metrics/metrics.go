package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the KYB verification module.
type Metrics struct {
	// Verdict outcomes by overall status
	VerdictOutcome *prometheus.CounterVec

	// Individual check outcomes by check name and status
	CheckOutcome *prometheus.CounterVec

	// Full verification latency
	VerifyLatency prometheus.Histogram
}

// New creates a Metrics instance with all KYB module metrics registered.
func New() *Metrics {
	return &Metrics{
		VerdictOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onyx_kyb_verdicts_total",
			Help: "Total KYB verdicts by overall status",
		}, []string{"status"}),

		CheckOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onyx_kyb_check_results_total",
			Help: "Total KYB check results by check name and status",
		}, []string{"check", "status"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onyx_kyb_verify_duration_seconds",
			Help:    "Duration of full KYB verification including audit packaging",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementVerdict records a verdict outcome.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.VerdictOutcome.WithLabelValues(status).Inc()
	}
}

// IncrementCheck records a single check outcome.
func (m *Metrics) IncrementCheck(check, status string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(check, status).Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
