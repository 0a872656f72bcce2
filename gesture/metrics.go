package gesture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible instrumentation for gesture-network
// execution. A nil *Metrics is always safe to call methods on: every method
// checks for nil and no-ops, so instrumentation stays entirely optional.
//
// Metrics exposed (namespace "gestit"):
//
//   - active_subscriptions (gauge, label "feature"): live ground-node
//     sensor subscriptions. Equal to the number of ground nodes whose held
//     token set is non-empty.
//   - tokens_inflight (gauge, label "network"): tokens held anywhere in one
//     compiled network.
//   - completions_total (counter, labels "network", "node_kind").
//   - gesture_events_total (counter, label "network").
//   - refeeds_total (counter, label "network").
type Metrics struct {
	activeSubscriptions *prometheus.GaugeVec
	tokensInflight      *prometheus.GaugeVec
	completions         *prometheus.CounterVec
	gestureEvents       *prometheus.CounterVec
	refeeds             *prometheus.CounterVec
}

// NewMetrics registers gesture-network metrics with registerer (use
// prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation).
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		activeSubscriptions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gestit",
			Name:      "active_subscriptions",
			Help:      "Live ground-term sensor subscriptions.",
		}, []string{"feature"}),
		tokensInflight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gestit",
			Name:      "tokens_inflight",
			Help:      "Tokens currently held anywhere in the network.",
		}, []string{"network"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestit",
			Name:      "completions_total",
			Help:      "Completions emitted by a node, by kind.",
		}, []string{"network", "node_kind"}),
		gestureEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestit",
			Name:      "gesture_events_total",
			Help:      "Gesture broadcasts raised by a compiled expression.",
		}, []string{"network"}),
		refeeds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestit",
			Name:      "refeeds_total",
			Help:      "Root auto-refeed token injections.",
		}, []string{"network"}),
	}
}

func (m *Metrics) subscribe(feature Feature) {
	if m == nil {
		return
	}
	m.activeSubscriptions.WithLabelValues(featureLabel(feature)).Inc()
}

func (m *Metrics) unsubscribe(feature Feature) {
	if m == nil {
		return
	}
	m.activeSubscriptions.WithLabelValues(featureLabel(feature)).Dec()
}

func (m *Metrics) tokensChanged(networkID string, delta int) {
	if m == nil {
		return
	}
	g := m.tokensInflight.WithLabelValues(networkID)
	if delta > 0 {
		g.Add(float64(delta))
	} else if delta < 0 {
		g.Sub(float64(-delta))
	}
}

func (m *Metrics) completion(networkID, nodeKind string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(networkID, nodeKind).Inc()
}

func (m *Metrics) gestureEvent(networkID string) {
	if m == nil {
		return
	}
	m.gestureEvents.WithLabelValues(networkID).Inc()
}

func (m *Metrics) refeed(networkID string) {
	if m == nil {
		return
	}
	m.refeeds.WithLabelValues(networkID).Inc()
}

func featureLabel(f Feature) string {
	if s, ok := f.(string); ok {
		return s
	}
	return "unknown"
}
