package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skene-dev/skene/pkg/domain"
)

// Metrics holds the engine-level prometheus collectors. They are fed
// through lifecycle hooks so the scene machine itself stays free of
// instrumentation concerns.
type Metrics struct {
	turns       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skene_turns_total",
				Help: "Total turns handled, by replying scene.",
			},
			[]string{"scene", "fallback"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skene_scene_transitions_total",
				Help: "Scene transitions, by source, target and trigger kind.",
			},
			[]string{"from", "to", "global"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skene_turn_duration_seconds",
				Help:    "Duration of turn handling.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(m.turns, m.transitions, m.duration)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.SceneEvent) {
			m.transitions.WithLabelValues(e.From, e.Scene, boolLabel(e.Global)).Inc()
		},
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(e.Scene, boolLabel(e.Fallback)).Inc()
			m.duration.Observe(e.Duration.Seconds())
		},
	}
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
