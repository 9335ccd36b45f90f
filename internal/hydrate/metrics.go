package hydrate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh outcome label values.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics records refresh activity. A nil *Metrics records nothing.
type Metrics struct {
	refreshes *prometheus.CounterVec
	stales    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the refresh metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_refresh_total",
			Help: "Completed store refreshes by kind and outcome.",
		}, []string{"kind", "outcome"}),
		stales: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_refresh_stale_total",
			Help: "Refresh results dropped because a newer refresh had started.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "daybook_refresh_duration_seconds",
			Help:    "Time spent fetching from the source.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.refreshes, m.stales, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) stale(kind string) {
	if m == nil {
		return
	}
	m.stales.WithLabelValues(kind).Inc()
}
