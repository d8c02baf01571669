package evtfilter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FilterEvaluations *prometheus.CounterVec
	Events            *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FilterEvaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evtfilter_filter_evaluations_total",
				Help: "Total number of filter evaluations by filter and result",
			},
			[]string{"filter", "result"},
		),
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evtfilter_events_total",
				Help: "Total number of events by selection decision",
			},
			[]string{"decision"},
		),
	}
}

func (m *Metrics) observeFilter(filter string, passed bool) {
	if m == nil {
		return
	}
	m.FilterEvaluations.WithLabelValues(filter, resultLabel(passed)).Inc()
}

func (m *Metrics) observeLookupError(filter string) {
	if m == nil {
		return
	}
	m.FilterEvaluations.WithLabelValues(filter, "error").Inc()
}

func (m *Metrics) observeEvent(accepted bool) {
	if m == nil {
		return
	}
	decision := "rejected"
	if accepted {
		decision = "accepted"
	}
	m.Events.WithLabelValues(decision).Inc()
}

func resultLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
