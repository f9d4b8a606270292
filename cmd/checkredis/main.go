package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/djooberlee/microdevops-utils/internal/config"
	"github.com/djooberlee/microdevops-utils/internal/credential"
	"github.com/djooberlee/microdevops-utils/internal/logging"
	"github.com/djooberlee/microdevops-utils/internal/probe"
	"github.com/djooberlee/microdevops-utils/internal/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	r := runner.New(os.Stdout, os.Stderr, logger)

	if len(os.Args) > 1 {
		verbose, err := runner.ParseVerbosity(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "usage: checkredis [0|1]")
			return r.Usage(err)
		}
		r.Verbose = verbose
	}

	// Missing file means unauthenticated; a malformed file must not be
	// mistaken for either, so the check resolves to UNKNOWN here.
	cred, err := credential.Load(cfg.CredentialFile)
	if err != nil {
		return r.Report(probe.Result{
			Probe:     "redis",
			Status:    probe.StatusUnknown,
			Message:   err.Error(),
			CheckedAt: time.Now().UTC(),
		})
	}

	client := probe.NewGoRedisClient(cfg.RedisAddr, cred.Secret, cfg.CheckTimeout)
	defer client.Close()

	return r.Run(context.Background(), probe.NewRedisCheck(client, cfg.CheckTimeout))
}
