package probe

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Suite runs an ordered list of probes and aggregates their outcomes.
type Suite struct {
	Probes []Probe
}

func NewSuite(probes ...Probe) *Suite {
	return &Suite{Probes: probes}
}

func (s *Suite) Name() string { return "suite" }

// Run executes every probe in order and returns the individual results.
func (s *Suite) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(s.Probes))
	for _, p := range s.Probes {
		results = append(results, p.Check(ctx))
	}
	return results
}

// Check runs the suite and collapses it to a single worst-of result:
// any FAIL wins over any UNKNOWN, which wins over PASS.
func (s *Suite) Check(ctx context.Context) Result {
	return Combine(s.Name(), s.Run(ctx))
}

// Combine folds per-probe results into one. Messages of non-passing
// probes are joined; warnings are concatenated in probe order.
func Combine(name string, results []Result) Result {
	out := Result{
		Probe:     name,
		Status:    StatusPass,
		CheckedAt: time.Now().UTC(),
	}
	var errs error
	for _, r := range results {
		out.LatencyMS += r.LatencyMS
		out.Warnings = append(out.Warnings, r.Warnings...)
		if r.Status == StatusPass {
			continue
		}
		errs = multierr.Append(errs, errors.New(r.Probe+": "+r.Message))
		switch r.Status {
		case StatusFail:
			out.Status = StatusFail
		case StatusUnknown:
			if out.Status != StatusFail {
				out.Status = StatusUnknown
			}
		}
	}
	if errs != nil {
		msgs := make([]string, 0, len(multierr.Errors(errs)))
		for _, e := range multierr.Errors(errs) {
			msgs = append(msgs, e.Error())
		}
		out.Message = strings.Join(msgs, "; ")
	}
	return out
}
