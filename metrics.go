package gameshare

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records injection activity as Prometheus collectors. A nil
// *Metrics records nothing.
type Metrics struct {
	passes   *prometheus.CounterVec
	members  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gameshare",
			Name:      "injection_passes_total",
			Help:      "Injection passes by result.",
		}, []string{"result"}),
		members: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gameshare",
			Name:      "injected_members_total",
			Help:      "Members processed by injection passes, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gameshare",
			Name:      "injection_duration_seconds",
			Help:      "Duration of injection passes.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.passes, m.members, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) observePass(err error, p *pass, d time.Duration) {
	if m == nil {
		return
	}

	m.duration.Observe(d.Seconds())

	if err != nil {
		m.passes.WithLabelValues("failed").Inc()
		m.members.WithLabelValues("failed").Inc()
		return
	}

	m.passes.WithLabelValues("ok").Inc()
	m.members.WithLabelValues("injected").Add(float64(len(p.writes)))
	m.members.WithLabelValues("skipped").Add(float64(p.skipped))
	m.members.WithLabelValues("failed").Add(float64(p.failed))
}
