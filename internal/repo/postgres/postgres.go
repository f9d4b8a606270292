package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS probe_runs (
    id         BIGSERIAL PRIMARY KEY,
    probe      TEXT        NOT NULL,
    status     TEXT        NOT NULL,
    message    TEXT        NOT NULL DEFAULT '',
    warnings   TEXT        NOT NULL DEFAULT '',
    latency_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
    checked_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS probe_runs_probe_checked_at
    ON probe_runs (probe, checked_at DESC)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, r *probe.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO probe_runs
		   (probe, status, message, warnings, latency_ms, checked_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6)`,
		r.Probe, string(r.Status), r.Message, strings.Join(r.Warnings, "\n"), r.LatencyMS, r.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *Store) Latest(ctx context.Context) ([]probe.Result, error) {
	rows, err := s.pool.Query(ctx, `
SELECT DISTINCT ON (probe)
       probe, status, message, warnings, latency_ms, checked_at
  FROM probe_runs
 ORDER BY probe, checked_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("latest runs: %w", err)
	}
	defer rows.Close()

	var out []probe.Result
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) LastByProbe(ctx context.Context, name string) (*probe.Result, error) {
	rows, err := s.pool.Query(ctx, `
SELECT probe, status, message, warnings, latency_ms, checked_at
  FROM probe_runs
 WHERE probe = $1
 ORDER BY checked_at DESC, id DESC
 LIMIT 1`, name)
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanRun(rows.Scan)
	if err != nil {
		return nil, err
	}
	return &r, rows.Err()
}

func scanRun(scan func(dest ...any) error) (probe.Result, error) {
	var (
		r        probe.Result
		status   string
		warnings string
	)
	if err := scan(&r.Probe, &status, &r.Message, &warnings, &r.LatencyMS, &r.CheckedAt); err != nil {
		return probe.Result{}, fmt.Errorf("scan run: %w", err)
	}
	r.Status = probe.Status(status)
	if warnings != "" {
		r.Warnings = strings.Split(warnings, "\n")
	}
	return r, nil
}
