package probe

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

// MarkerCheck searches a directory tree for compression-skip marker files
// left behind by the backup pipeline. It is a soft probe: matches produce
// warnings on an otherwise passing result, never a failure. Only the
// presence of a marker is checked; its content is not inspected.
type MarkerCheck struct {
	Root    string
	Pattern string // filename glob, defaults to "no-compress_*"
}

func NewMarkerCheck(root string) *MarkerCheck {
	return &MarkerCheck{Root: root, Pattern: "no-compress_*"}
}

func (c *MarkerCheck) Name() string { return "backup-marker" }

func (c *MarkerCheck) Check(ctx context.Context) Result {
	start := time.Now()
	pattern := c.Pattern
	if pattern == "" {
		pattern = "no-compress_*"
	}

	var matches []string
	err := filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		ok, merr := filepath.Match(pattern, d.Name())
		if merr != nil {
			return merr
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})

	res := Result{
		Probe:     c.Name(),
		LatencyMS: time.Since(start).Seconds() * 1000,
		CheckedAt: time.Now().UTC(),
	}
	if err != nil {
		res.Status = StatusUnknown
		res.Message = "marker search failed: " + err.Error()
		return res
	}
	res.Status = StatusPass
	if len(matches) == 0 {
		res.Message = "no compression-skip markers found"
		return res
	}
	res.Message = "compression-skip markers present"
	for _, m := range matches {
		res.Warnings = append(res.Warnings, "compression-skip marker found: "+m)
	}
	return res
}
