package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for turn handling.
type ConversationMetrics struct {
	turnsTotal         *prometheus.CounterVec
	collaboratorErrors *prometheus.CounterVec
	turnLatency        prometheus.Histogram
	activeSessions     prometheus.Gauge
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riccoai",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total processed turns by routing path",
		}, []string{"route"}),
		collaboratorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riccoai",
			Subsystem: "conversation",
			Name:      "collaborator_errors_total",
			Help:      "Total collaborator failures absorbed by fallbacks",
		}, []string{"collaborator"}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riccoai",
			Subsystem: "conversation",
			Name:      "turn_latency_seconds",
			Help:      "Latency of full turn handling",
			Buckets:   prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riccoai",
			Subsystem: "conversation",
			Name:      "active_sessions",
			Help:      "Sessions currently resident in the manager",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.collaboratorErrors, m.turnLatency, m.activeSessions)
	return m
}

func (m *ConversationMetrics) ObserveTurn(route string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(route).Inc()
	m.turnLatency.Observe(seconds)
}

func (m *ConversationMetrics) ObserveCollaboratorError(collaborator string) {
	if m == nil {
		return
	}
	m.collaboratorErrors.WithLabelValues(collaborator).Inc()
}

func (m *ConversationMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
