package instruments

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarchlab/steptrace"
)

// MetricsVec holds the Prometheus collectors shared by all the Metrics
// instruments of a namespace.
type MetricsVec struct {
	enters *prometheus.CounterVec
	exits  *prometheus.CounterVec
	active *prometheus.GaugeVec
}

// NewMetricsVec creates the collectors and registers them.
func NewMetricsVec(
	reg prometheus.Registerer,
	namespace string,
) (*MetricsVec, error) {
	v := &MetricsVec{
		enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "span_enter_total",
				Help:      "Number of times a traced span was entered.",
			},
			[]string{"span"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "span_exit_total",
				Help:      "Number of times a traced span was exited.",
			},
			[]string{"span"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "span_active",
				Help:      "Number of traced spans currently open.",
			},
			[]string{"span"},
		),
	}

	for _, c := range []prometheus.Collector{v.enters, v.exits, v.active} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering span metrics: %w", err)
		}
	}

	return v, nil
}

// Instrument returns an instrument that updates the metrics labelled with the
// given span name.
func (v *MetricsVec) Instrument(span string) *Metrics {
	return &Metrics{
		enters: v.enters.WithLabelValues(span),
		exits:  v.exits.WithLabelValues(span),
		active: v.active.WithLabelValues(span),
	}
}

// Metrics is an instrument that counts span enters and exits in Prometheus.
type Metrics struct {
	enters prometheus.Counter
	exits  prometheus.Counter
	active prometheus.Gauge
}

// OnEnter counts an enter and marks the span active.
func (m *Metrics) OnEnter() {
	m.enters.Inc()
	m.active.Inc()
}

// OnExit counts an exit and marks the span inactive.
func (m *Metrics) OnExit() {
	m.exits.Inc()
	m.active.Dec()
}

var _ steptrace.Instrument = (*Metrics)(nil)
