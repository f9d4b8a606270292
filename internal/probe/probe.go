package probe

import (
	"context"
	"time"
)

// Status is the tri-state outcome of a single probe run.
//
// StatusUnknown means the check itself could not be completed (missing
// metric, bad credential file), not that the target is broken. Consumers
// must not collapse it into StatusFail.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusUnknown Status = "UNKNOWN"
)

// Result holds the outcome of a single probe run. Immutable once produced.
type Result struct {
	Probe     string    `json:"probe"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	LatencyMS float64   `json:"latency_ms,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Probe is implemented by any point-in-time health check. Probes are
// read-only: they never mutate the target's state, and concurrent
// invocations are independent.
type Probe interface {
	Name() string
	Check(ctx context.Context) Result
}
