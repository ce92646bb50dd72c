// Package metrics provides observability for the classifier module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the classifier. All methods are
// nil-safe so wiring metrics stays optional in tests and the CLI.
type Metrics struct {
	// Decisions by tier and fired rule
	Decisions *prometheus.CounterVec

	// Manual-review outcomes by reason code
	ManualReviews *prometheus.CounterVec

	// Full evaluation latency including persistence and audit emission
	EvaluateLatency prometheus.Histogram

	// Decision cache lookups by result ("hit" / "miss")
	CacheLookups *prometheus.CounterVec

	// Decisions flagged for human verification
	VerificationFlagged prometheus.Counter
}

// New creates a Metrics instance with all classifier metrics registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskengine_decisions_total",
			Help: "Total classification decisions by tier and fired rule",
		}, []string{"tier", "rule"}),

		ManualReviews: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskengine_manual_reviews_total",
			Help: "Total manual-review outcomes by reason code",
		}, []string{"reason"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskengine_evaluate_duration_seconds",
			Help:    "Duration of full decision evaluation including persistence",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskengine_decision_cache_lookups_total",
			Help: "Decision cache lookups by result",
		}, []string{"result"}),

		VerificationFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskengine_verification_flagged_total",
			Help: "Decisions returned with the human-verification advisory flag",
		}),
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(tier string, rule string) {
	if m != nil {
		m.Decisions.WithLabelValues(tier, rule).Inc()
	}
}

// IncrementManualReview records a manual-review outcome.
func (m *Metrics) IncrementManualReview(reason string) {
	if m != nil {
		m.ManualReviews.WithLabelValues(reason).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementCacheLookup records a decision cache hit or miss.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementVerificationFlagged records an advisory verification flag.
func (m *Metrics) IncrementVerificationFlagged() {
	if m != nil {
		m.VerificationFlagged.Inc()
	}
}
