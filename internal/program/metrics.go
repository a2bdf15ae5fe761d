package program

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	instructions *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qv",
			Name:      "instructions_total",
			Help:      "Processed instructions by name and result",
		}, []string{"instruction", "result"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.instructions)
	}

	return m
}

func (m *Metrics) observe(instruction string, err error) {
	if m == nil {
		return
	}
	m.instructions.WithLabelValues(instruction, ErrorName(err)).Inc()
}
