package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/inventory"
	"github.com/djooberlee/microdevops-utils/internal/probe"
)

type stubProbe struct {
	res    probe.Result
	called int
}

func (s *stubProbe) Name() string { return "stub" }

func (s *stubProbe) Check(ctx context.Context) probe.Result {
	s.called++
	r := s.res
	r.Probe = "stub"
	return r
}

func newTestRunner(out, errOut *bytes.Buffer) *Runner {
	r := New(out, errOut, zap.NewNop())
	r.Inventory = inventory.Static("db1.example.org")
	r.Now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func TestParseVerbosity_AcceptsOnlyLiterals(t *testing.T) {
	for _, tc := range []struct {
		arg     string
		verbose bool
		wantErr bool
	}{
		{"0", false, false},
		{"1", true, false},
		{"2", false, true},
		{"", false, true},
		{"01", false, true},
		{"true", false, true},
	} {
		v, err := ParseVerbosity(tc.arg)
		if tc.wantErr != (err != nil) {
			t.Fatalf("arg %q: err=%v", tc.arg, err)
		}
		if v != tc.verbose {
			t.Fatalf("arg %q: verbose=%v", tc.arg, v)
		}
	}
}

func TestRun_PassGoesToStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	code := r.Run(context.Background(), &stubProbe{res: probe.Result{Status: probe.StatusPass, Message: "ok"}})
	if code != ExitPass {
		t.Fatalf("want exit 0, got %d", code)
	}
	if !strings.HasPrefix(out.String(), "PASS stub:") {
		t.Fatalf("stdout: %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("stderr should be quiet on pass: %q", errOut.String())
	}
}

func TestRun_FailEmitsTimestampedError(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	code := r.Run(context.Background(), &stubProbe{res: probe.Result{Status: probe.StatusFail, Message: "down"}})
	if code != ExitFail {
		t.Fatalf("want exit 1, got %d", code)
	}
	if !strings.HasPrefix(errOut.String(), "2026-08-31 12:00:00 ERROR: ") {
		t.Fatalf("stderr: %q", errOut.String())
	}
}

func TestRun_UnknownHasDistinctExitCode(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	code := r.Run(context.Background(), &stubProbe{res: probe.Result{Status: probe.StatusUnknown, Message: "no metric"}})
	if code != ExitUnknown {
		t.Fatalf("want exit %d, got %d", ExitUnknown, code)
	}
	if code == ExitFail {
		t.Fatalf("UNKNOWN must not share FAIL's code")
	}
}

func TestRun_VerbosePrintsHostNotice(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)
	r.Verbose = true

	r.Run(context.Background(), &stubProbe{res: probe.Result{Status: probe.StatusPass}})

	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want exactly one NOTICE line, got %q", errOut.String())
	}
	if !strings.Contains(lines[0], "NOTICE: ") || !strings.Contains(lines[0], "db1.example.org") {
		t.Fatalf("notice line: %q", lines[0])
	}
}

func TestRun_QuietPrintsNoNotice(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	r.Run(context.Background(), &stubProbe{res: probe.Result{Status: probe.StatusPass}})
	if strings.Contains(errOut.String(), "NOTICE") {
		t.Fatalf("quiet run must not print NOTICE: %q", errOut.String())
	}
}

func TestRun_WarningsForwardedOnce(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	code := r.Run(context.Background(), &stubProbe{res: probe.Result{
		Status:   probe.StatusPass,
		Warnings: []string{"compression-skip marker found: /backup/no-compress_mysql"},
	}})
	if code != ExitPass {
		t.Fatalf("soft warning must not change exit code, got %d", code)
	}
	if strings.Count(errOut.String(), "WARNING: ") != 1 {
		t.Fatalf("want exactly one WARNING line, got %q", errOut.String())
	}
}

func TestUsage_ExitsOneWithoutRunningProbe(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestRunner(&out, &errOut)

	p := &stubProbe{res: probe.Result{Status: probe.StatusPass}}
	if _, err := ParseVerbosity("2"); err == nil {
		t.Fatalf("expected usage error")
	} else if code := r.Usage(err); code != ExitUsage {
		t.Fatalf("want exit 1, got %d", code)
	}
	if p.called != 0 {
		t.Fatalf("probe must not run after usage error")
	}
	if !strings.Contains(errOut.String(), "ERROR: ") {
		t.Fatalf("stderr: %q", errOut.String())
	}
}

func TestExitCode_Total(t *testing.T) {
	m := map[probe.Status]int{
		probe.StatusPass:    ExitPass,
		probe.StatusFail:    ExitFail,
		probe.StatusUnknown: ExitUnknown,
	}
	for s, want := range m {
		if got := ExitCode(s); got != want {
			t.Fatalf("status %s: want %d, got %d", s, want, got)
		}
	}
}
