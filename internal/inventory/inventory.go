// Package inventory resolves the identity of the host a check runs on.
package inventory

import (
	"context"
	"os"
)

// Resolver looks up the local host identifier. Injectable so tests can
// substitute a fixed name instead of the real machine's.
type Resolver interface {
	Hostname(ctx context.Context) (string, error)
}

// OS resolves through the operating system.
type OS struct{}

func (OS) Hostname(ctx context.Context) (string, error) {
	return os.Hostname()
}

// Static always returns the same name. Used in tests and in deployments
// where the inventory name differs from the kernel hostname.
type Static string

func (s Static) Hostname(ctx context.Context) (string, error) {
	return string(s), nil
}
