package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StatusClient is the slice of the cache server protocol the probe needs:
// a liveness query and a status/info query. Production code wraps a real
// client; tests substitute fakes.
type StatusClient interface {
	Ping(ctx context.Context) (string, error)
	Info(ctx context.Context) (string, error)
}

// RedisCheck verifies a cache server is reachable and has rejected no
// connections since its last counter reset.
type RedisCheck struct {
	Client  StatusClient
	Counter string        // info field to inspect, defaults to "rejected_connections"
	Timeout time.Duration // per-run budget across both queries
}

func NewRedisCheck(client StatusClient, timeout time.Duration) *RedisCheck {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RedisCheck{
		Client:  client,
		Counter: "rejected_connections",
		Timeout: timeout,
	}
}

func (c *RedisCheck) Name() string { return "redis" }

func (c *RedisCheck) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	done := func(s Status, msg string) Result {
		return Result{
			Probe:     c.Name(),
			Status:    s,
			Message:   msg,
			LatencyMS: time.Since(start).Seconds() * 1000,
			CheckedAt: time.Now().UTC(),
		}
	}

	pong, err := c.Client.Ping(ctx)
	if err != nil {
		if isAuthErr(err) {
			return done(StatusFail, "authentication failed: "+err.Error())
		}
		return done(StatusFail, "service unreachable: "+err.Error())
	}
	if !strings.EqualFold(pong, "PONG") {
		return done(StatusFail, fmt.Sprintf("service unreachable: unexpected liveness reply %q", pong))
	}

	info, err := c.Client.Info(ctx)
	if err != nil {
		if isAuthErr(err) {
			return done(StatusFail, "authentication failed: "+err.Error())
		}
		return done(StatusFail, "service unreachable: "+err.Error())
	}

	counter := c.Counter
	if counter == "" {
		counter = "rejected_connections"
	}
	n, ok := infoCounter(info, counter)
	if !ok {
		return done(StatusUnknown, "metric not found: "+counter)
	}
	if n != 0 {
		return done(StatusFail, fmt.Sprintf("%s is %d, want 0", counter, n))
	}
	return done(StatusPass, counter+" is 0")
}

// infoCounter extracts an integer field from line-based key:value info output.
func infoCounter(info, key string) (int64, bool) {
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimRight(line, "\r")
		v, found := strings.CutPrefix(line, key+":")
		if !found {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// isAuthErr distinguishes credential rejection from an unreachable service
// so operators can tell the two apart from the diagnostic line alone.
func isAuthErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NOAUTH") ||
		strings.Contains(msg, "WRONGPASS") ||
		strings.Contains(msg, "invalid password") ||
		strings.Contains(msg, "invalid username-password")
}
