package metrics

import (
	"github.com/go-arcade/edo/pkg/event"
	"github.com/prometheus/client_golang/prometheus"
)

// DomainMetrics counts committed domain events and the status transitions they carry.
type DomainMetrics struct {
	events      *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewDomainMetrics() *DomainMetrics {
	return &DomainMetrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "edo",
				Name:      "domain_events_total",
				Help:      "Total number of published domain events",
			},
			[]string{"event"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "edo",
				Name:      "status_transitions_total",
				Help:      "Total number of status transitions per aggregate",
			},
			[]string{"aggregate", "from", "to"},
		),
	}
}

func (m *DomainMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.events.Describe(ch)
	m.transitions.Describe(ch)
}

func (m *DomainMetrics) Collect(ch chan<- prometheus.Metric) {
	m.events.Collect(ch)
	m.transitions.Collect(ch)
}

func (m *DomainMetrics) Handle(e event.Event) {
	m.events.WithLabelValues(e.EventName()).Inc()
	if t, ok := e.(event.Transition); ok {
		from, to := t.Transition()
		m.transitions.WithLabelValues(e.EventType(), from, to).Inc()
	}
}

// Subscribe attaches the recorder to every event on bus.
func (m *DomainMetrics) Subscribe(bus *event.EventBus) {
	bus.RegisterHandler(event.Wildcard, m)
}
