package memory

import (
	"context"
	"sync"

	"github.com/djooberlee/microdevops-utils/internal/probe"
)

type Store struct {
	mu      sync.RWMutex
	results []probe.Result
}

func New() *Store {
	return &Store{results: make([]probe.Result, 0, 128)}
}

func (m *Store) Append(ctx context.Context, r *probe.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *r)
	return nil
}

func (m *Store) Latest(ctx context.Context) ([]probe.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]int) // probe name -> index in out
	out := make([]probe.Result, 0, 8)
	for _, r := range m.results {
		if i, ok := seen[r.Probe]; ok {
			if r.CheckedAt.After(out[i].CheckedAt) || r.CheckedAt.Equal(out[i].CheckedAt) {
				out[i] = r
			}
			continue
		}
		seen[r.Probe] = len(out)
		out = append(out, r)
	}
	return out, nil
}

func (m *Store) LastByProbe(ctx context.Context, name string) (*probe.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Probe == name {
			r := m.results[i]
			return &r, nil
		}
	}
	return nil, nil
}
