package calendar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts conversions per strategy and the degraded answers.
// A nil *Metrics records nothing.
type Metrics struct {
	conversions    *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	approximations prometheus.Counter
	refreshErrors  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "conversions_total",
			Help:      "Number of BS/Gregorian conversions, by direction and serving strategy.",
		}, []string{"direction", "strategy"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "fallbacks_total",
			Help:      "Number of conversions where the authoritative source failed and the tabulated converter answered.",
		}, []string{"direction"}),
		approximations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "approximations_total",
			Help:      "Number of answers computed from a representative year outside the table.",
		}),
		refreshErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "source_refresh_errors_total",
			Help:      "Number of failed refreshes of the stored calendar table.",
		}),
	}
}

func (m *Metrics) served(s Served) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(s.Direction, s.Strategy).Inc()
	if s.Fallback != nil {
		m.fallbacks.WithLabelValues(s.Direction).Inc()
	}
}

func (m *Metrics) approximated() {
	if m == nil {
		return
	}
	m.approximations.Inc()
}

// Refreshed is meant for StoredSource.OnRefresh.
func (m *Metrics) Refreshed(err error) {
	if m == nil || err == nil {
		return
	}
	m.refreshErrors.Inc()
}
