package repo

import (
	"context"

	"github.com/djooberlee/microdevops-utils/internal/probe"
)

// RunStore is the port for probe run history — swap in any DB adapter.
type RunStore interface {
	Append(ctx context.Context, r *probe.Result) error
	// Latest returns the most recent result per probe.
	Latest(ctx context.Context) ([]probe.Result, error)
	LastByProbe(ctx context.Context, name string) (*probe.Result, error)
}
