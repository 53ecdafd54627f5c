package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the trust scoring module.
type Metrics struct {
	// Signals generated by risk level
	SignalOutcome *prometheus.CounterVec

	// Distribution of computed trust scores
	TrustScore prometheus.Histogram

	// Rail adjustments applied, by rail type and risk level
	RailAdjustments *prometheus.CounterVec

	// Full scoring latency
	ScoreLatency prometheus.Histogram
}

// New creates a Metrics instance with all trust module metrics registered.
func New() *Metrics {
	return &Metrics{
		SignalOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onyx_trust_signals_total",
			Help: "Total trust signals generated by risk level",
		}, []string{"risk_level"}),

		TrustScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onyx_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),

		RailAdjustments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onyx_trust_rail_adjustments_total",
			Help: "Total rail adjustments applied by rail type and risk level",
		}, []string{"rail_type", "risk_level"}),

		ScoreLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onyx_trust_score_duration_seconds",
			Help:    "Duration of full trust scoring including audit packaging",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementSignal records a generated signal.
func (m *Metrics) IncrementSignal(riskLevel string) {
	if m != nil {
		m.SignalOutcome.WithLabelValues(riskLevel).Inc()
	}
}

// ObserveScore records a computed trust score.
func (m *Metrics) ObserveScore(score float64) {
	if m != nil {
		m.TrustScore.Observe(score)
	}
}

// IncrementRailAdjustment records one applied adjustment.
func (m *Metrics) IncrementRailAdjustment(railType, riskLevel string) {
	if m != nil {
		m.RailAdjustments.WithLabelValues(railType, riskLevel).Inc()
	}
}

// ObserveScoreLatency records the total scoring duration.
func (m *Metrics) ObserveScoreLatency(d time.Duration) {
	if m != nil {
		m.ScoreLatency.Observe(d.Seconds())
	}
}
