package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records which storage tier served each gateway call. The API keeps
// the tiers indistinguishable, so these counters are the operator's signal
// for silent degradation to the fallback tier.
type Metrics struct {
	submissions *prometheus.CounterVec
	fetches     *prometheus.CounterVec
}

// NewMetrics registers gateway counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farewell_quiz",
			Name:      "submissions_total",
			Help:      "Participant submissions by storage tier.",
		}, []string{"tier"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farewell_quiz",
			Name:      "fetches_total",
			Help:      "Participant list reads by storage tier.",
		}, []string{"tier"}),
	}
}

func (m *Metrics) SubmissionServed(tier string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(tier).Inc()
}

func (m *Metrics) FetchServed(tier string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(tier).Inc()
}
