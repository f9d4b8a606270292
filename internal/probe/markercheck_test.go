package probe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestMarkerCheck_NoMarkersPassesClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "daily.0", "dump.sql.gz"))

	out := NewMarkerCheck(dir).Check(context.Background())
	if out.Status != StatusPass {
		t.Fatalf("want PASS, got %+v", out)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("want no warnings, got %v", out.Warnings)
	}
}

func TestMarkerCheck_NestedMarkerWarnsButPasses(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "hosts", "db1", "no-compress_mysql")
	writeFile(t, marker)

	out := NewMarkerCheck(dir).Check(context.Background())
	if out.Status != StatusPass {
		t.Fatalf("soft probe must still pass, got %+v", out)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("want exactly one warning, got %v", out.Warnings)
	}
	if !strings.Contains(out.Warnings[0], marker) {
		t.Fatalf("warning should name the marker path, got %q", out.Warnings[0])
	}
}

func TestMarkerCheck_PatternMatchesFilenameOnly(t *testing.T) {
	dir := t.TempDir()
	// directory named like a marker must not count; only files do
	writeFile(t, filepath.Join(dir, "no-compress_dir", "inner.txt"))
	writeFile(t, filepath.Join(dir, "no-compress_pgsql"))

	out := NewMarkerCheck(dir).Check(context.Background())
	if len(out.Warnings) != 1 {
		t.Fatalf("want 1 warning, got %v", out.Warnings)
	}
}

func TestMarkerCheck_MissingRootIsUnknown(t *testing.T) {
	out := NewMarkerCheck(filepath.Join(t.TempDir(), "nope")).Check(context.Background())
	if out.Status != StatusUnknown {
		t.Fatalf("want UNKNOWN on unreadable root, got %+v", out)
	}
}

func TestMarkerCheck_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "no-compress_a"))
	chk := NewMarkerCheck(dir)

	a := chk.Check(context.Background())
	b := chk.Check(context.Background())
	if a.Status != b.Status || len(a.Warnings) != len(b.Warnings) {
		t.Fatalf("repeat run diverged: %+v vs %+v", a, b)
	}
}
