package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/config"
	"github.com/djooberlee/microdevops-utils/internal/credential"
	"github.com/djooberlee/microdevops-utils/internal/httpapi"
	"github.com/djooberlee/microdevops-utils/internal/logging"
	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/repo"
	"github.com/djooberlee/microdevops-utils/internal/repo/memory"
	"github.com/djooberlee/microdevops-utils/internal/repo/postgres"
	"github.com/djooberlee/microdevops-utils/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cred, err := credential.Load(cfg.CredentialFile)
	if err != nil {
		log.Fatal(err)
	}

	probes, err := buildProbes(cfg, cred)
	if err != nil {
		log.Fatal(err)
	}

	var store repo.RunStore = memory.New()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
	}

	reg := prometheus.NewRegistry()
	instrumented := &httpapi.InstrumentedStore{
		RunStore: store,
		Metrics:  httpapi.NewMetrics(reg),
	}

	rc := scheduler.NewRechecker(logger, instrumented, probes, cfg.Interval, cfg.Concurrency)
	go rc.Run(ctx)

	api := httpapi.NewServer(logger, instrumented, reg)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info("agent_listen", zap.String("addr", cfg.Addr), zap.Int("probes", len(probes)))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// buildProbes loads the YAML suite when configured, otherwise falls back
// to the two built-in checks with env defaults.
func buildProbes(cfg config.Config, cred credential.Credential) ([]probe.Probe, error) {
	if cfg.SuiteFile != "" {
		sf, err := config.LoadSuite(cfg.SuiteFile)
		if err != nil {
			return nil, err
		}
		return sf.Build(cfg, cred), nil
	}
	return []probe.Probe{
		probe.NewRedisCheck(probe.NewGoRedisClient(cfg.RedisAddr, cred.Secret, cfg.CheckTimeout), cfg.CheckTimeout),
		probe.NewMarkerCheck(cfg.BackupRoot),
	}, nil
}
