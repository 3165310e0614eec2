// Package promhooks exports cacheengine events as Prometheus metrics.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/cacheengine"
)

type Hooks struct {
	state         prometheus.Gauge
	transitions   *prometheus.CounterVec
	startFailures *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	failures      *prometheus.CounterVec
}

var _ cacheengine.Hooks = (*Hooks)(nil)

// New registers the collectors on reg. A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "cacheengine", Name: "state",
			Help: "Lifecycle state: 0 unconnected, 1 connecting, 2 ready, 3 stopped.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cacheengine", Name: "state_transitions_total",
			Help: "Lifecycle transitions by target state.",
		}, []string{"to"}),
		startFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cacheengine", Name: "start_failures_total",
			Help: "Failed starts by phase.",
		}, []string{"phase"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cacheengine", Name: "envelope_rejections_total",
			Help: "Stored values that failed envelope validation.",
		}, []string{"reason"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cacheengine", Name: "storage_failures_total",
			Help: "Transport failures by operation.",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{h.state, h.transitions, h.startFailures, h.rejections, h.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) StateChanged(_, to cacheengine.State) {
	h.state.Set(float64(to))
	h.transitions.WithLabelValues(to.String()).Inc()
}

func (h *Hooks) StartFailed(phase string, _ error) {
	h.startFailures.WithLabelValues(phase).Inc()
}

func (h *Hooks) EnvelopeRejected(_, reason string) {
	h.rejections.WithLabelValues(reason).Inc()
}

func (h *Hooks) StorageFailed(op, _ string, _ error) {
	h.failures.WithLabelValues(op).Inc()
}
