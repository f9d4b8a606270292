package httpapi

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/repo"
)

// Metrics exposes probe outcomes to Prometheus scrapers.
type Metrics struct {
	status *prometheus.GaugeVec
	runs   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "checkprobe_status",
			Help: "Latest probe outcome: 1 pass, 0 fail, -1 unknown.",
		}, []string{"probe"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkprobe_runs_total",
			Help: "Probe runs by terminal status.",
		}, []string{"probe", "status"}),
	}
	reg.MustRegister(m.status, m.runs)
	return m
}

func (m *Metrics) Record(r *probe.Result) {
	v := 0.0
	switch r.Status {
	case probe.StatusPass:
		v = 1
	case probe.StatusUnknown:
		v = -1
	}
	m.status.WithLabelValues(r.Probe).Set(v)
	m.runs.WithLabelValues(r.Probe, string(r.Status)).Inc()
}

// InstrumentedStore records metrics for every appended run before
// delegating to the wrapped store.
type InstrumentedStore struct {
	repo.RunStore
	Metrics *Metrics
}

func (s *InstrumentedStore) Append(ctx context.Context, r *probe.Result) error {
	s.Metrics.Record(r)
	return s.RunStore.Append(ctx, r)
}
