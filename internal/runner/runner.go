// Package runner executes a probe once and turns its result into
// diagnostic lines and a process exit code.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/inventory"
	"github.com/djooberlee/microdevops-utils/internal/probe"
)

// Exit codes. UNKNOWN gets its own code so monitoring systems can tell
// "check failed" from "check could not run".
const (
	ExitPass    = 0
	ExitFail    = 1
	ExitUsage   = 1
	ExitUnknown = 3
)

const timeLayout = "2006-01-02 15:04:05"

// UsageError reports bad CLI input. Fatal before any check work begins.
type UsageError struct {
	Arg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("verbosity must be literal 0 or 1, got %q", e.Arg)
}

// ParseVerbosity accepts exactly "0" or "1".
func ParseVerbosity(arg string) (bool, error) {
	switch arg {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, &UsageError{Arg: arg}
	}
}

// Runner invokes one probe and reports the outcome. The primary
// PASS/FAIL line goes to Out; NOTICE/WARNING/ERROR diagnostics go to
// ErrOut with a timestamp prefix. Every line is mirrored to the logger.
type Runner struct {
	Out       io.Writer
	ErrOut    io.Writer
	Logger    *zap.Logger
	Inventory inventory.Resolver
	Verbose   bool
	Now       func() time.Time
}

func New(out, errOut io.Writer, logger *zap.Logger) *Runner {
	return &Runner{
		Out:       out,
		ErrOut:    errOut,
		Logger:    logger,
		Inventory: inventory.OS{},
		Now:       time.Now,
	}
}

// ExitCode maps a probe status to its process exit code. Total: every
// status has exactly one code.
func ExitCode(s probe.Status) int {
	switch s {
	case probe.StatusPass:
		return ExitPass
	case probe.StatusFail:
		return ExitFail
	default:
		return ExitUnknown
	}
}

// Run executes the probe once and returns the exit code the process
// should terminate with.
func (r *Runner) Run(ctx context.Context, p probe.Probe) int {
	if r.Verbose {
		host, err := r.Inventory.Hostname(ctx)
		if err != nil {
			r.diag("WARNING", "host identity lookup failed: "+err.Error())
		} else {
			r.diag("NOTICE", "running checks on "+host)
		}
	}
	return r.Report(p.Check(ctx))
}

// Report emits an already-produced result and returns its exit code.
// Used directly when a check resolves before its probe can run, e.g. a
// malformed credential file.
func (r *Runner) Report(res probe.Result) int {
	for _, w := range res.Warnings {
		r.diag("WARNING", w)
	}

	switch res.Status {
	case probe.StatusPass:
		fmt.Fprintf(r.Out, "PASS %s: %s\n", res.Probe, res.Message)
		r.Logger.Info("check_pass",
			zap.String("probe", res.Probe),
			zap.String("message", res.Message),
			zap.Float64("latency_ms", res.LatencyMS),
		)
	case probe.StatusFail:
		r.diag("ERROR", res.Probe+" check failed: "+res.Message)
		fmt.Fprintf(r.Out, "FAIL %s: %s\n", res.Probe, res.Message)
		r.Logger.Warn("check_fail",
			zap.String("probe", res.Probe),
			zap.String("message", res.Message),
			zap.Float64("latency_ms", res.LatencyMS),
		)
	default:
		r.diag("ERROR", res.Probe+" check could not run: "+res.Message)
		fmt.Fprintf(r.Out, "UNKNOWN %s: %s\n", res.Probe, res.Message)
		r.Logger.Warn("check_unknown",
			zap.String("probe", res.Probe),
			zap.String("message", res.Message),
		)
	}
	return ExitCode(res.Status)
}

// Usage reports a CLI usage error and returns the usage exit code.
func (r *Runner) Usage(err error) int {
	r.diag("ERROR", err.Error())
	r.Logger.Error("usage_error", zap.Error(err))
	return ExitUsage
}

func (r *Runner) diag(kind, text string) {
	fmt.Fprintf(r.ErrOut, "%s %s: %s\n", r.Now().Format(timeLayout), kind, text)
	switch kind {
	case "NOTICE":
		r.Logger.Info("notice", zap.String("text", text))
	case "WARNING":
		r.Logger.Warn("warning", zap.String("text", text))
	default:
		r.Logger.Error("error", zap.String("text", text))
	}
}
