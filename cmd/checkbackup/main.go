package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/djooberlee/microdevops-utils/internal/config"
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

	// Verbosity is a required positional argument, literal 0 or 1.
	// Anything else aborts before any filesystem access.
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: checkbackup 0|1")
		return r.Usage(&runner.UsageError{Arg: ""})
	}
	verbose, err := runner.ParseVerbosity(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: checkbackup 0|1")
		return r.Usage(err)
	}
	r.Verbose = verbose

	return r.Run(context.Background(), probe.NewMarkerCheck(cfg.BackupRoot))
}
