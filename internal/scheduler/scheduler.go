package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/repo"
)

// Rechecker re-runs a set of probes on an interval and records every
// result. Probes stay independent point-in-time checks; the loop is
// just an embedded scheduler.
type Rechecker struct {
	Logger      *zap.Logger
	Runs        repo.RunStore
	Probes      []probe.Probe
	Interval    time.Duration
	Concurrency int
}

func NewRechecker(
	logger *zap.Logger,
	runs repo.RunStore,
	probes []probe.Probe,
	interval time.Duration,
	concurrency int,
) *Rechecker {
	if concurrency < 1 {
		concurrency = 1
	}
	if interval < 0 {
		interval = 0
	}
	return &Rechecker{
		Logger:      logger,
		Runs:        runs,
		Probes:      probes,
		Interval:    interval,
		Concurrency: concurrency,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (r *Rechecker) Run(ctx context.Context) {
	if r.Interval == 0 {
		// disabled
		r.Logger.Info("rechecker_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	// immediate pass
	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("rechecker_stopped")
			return
		case <-t.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes every probe with bounded concurrency and appends the
// results to the run store.
func (r *Rechecker) RunOnce(ctx context.Context) {
	if len(r.Probes) == 0 {
		return
	}

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	for _, p := range r.Probes {
		p := p
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			out := p.Check(ctx)
			if err := r.Runs.Append(ctx, &out); err != nil {
				r.Logger.Warn("rechecker_append_error",
					zap.String("probe", p.Name()),
					zap.Error(err),
				)
				return
			}
			r.Logger.Debug("rechecker_checked",
				zap.String("probe", p.Name()),
				zap.String("status", string(out.Status)),
				zap.Float64("latency_ms", out.LatencyMS),
				zap.String("message", out.Message),
			)
		}()
	}

	wg.Wait()
}
