package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/repo/memory"
)

type countingProbe struct {
	name  string
	calls atomic.Int64
}

func (c *countingProbe) Name() string { return c.name }

func (c *countingProbe) Check(ctx context.Context) probe.Result {
	c.calls.Add(1)
	return probe.Result{Probe: c.name, Status: probe.StatusPass, CheckedAt: time.Now().UTC()}
}

func TestRunOnce_RecordsEveryProbe(t *testing.T) {
	store := memory.New()
	a := &countingProbe{name: "a"}
	b := &countingProbe{name: "b"}

	rc := NewRechecker(zap.NewNop(), store, []probe.Probe{a, b}, time.Minute, 2)
	rc.RunOnce(context.Background())

	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Fatalf("want each probe run once, got a=%d b=%d", a.calls.Load(), b.calls.Load())
	}
	latest, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("want 2 recorded runs, got %d", len(latest))
	}
}

func TestRun_ZeroIntervalDisables(t *testing.T) {
	store := memory.New()
	p := &countingProbe{name: "a"}
	rc := NewRechecker(zap.NewNop(), store, []probe.Probe{p}, 0, 1)

	done := make(chan struct{})
	go func() {
		rc.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("disabled rechecker should return immediately")
	}
	if p.calls.Load() != 0 {
		t.Fatalf("disabled rechecker must not run probes")
	}
}

func TestRun_CancelStopsLoop(t *testing.T) {
	store := memory.New()
	p := &countingProbe{name: "a"}
	rc := NewRechecker(zap.NewNop(), store, []probe.Probe{p}, 10*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rc.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("rechecker did not stop on cancel")
	}
	if p.calls.Load() == 0 {
		t.Fatalf("expected at least the immediate pass")
	}
}
