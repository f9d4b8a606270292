package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	RedisAddr      string        // cache server address, e.g. "127.0.0.1:6379"
	CredentialFile string        // AUTH=<secret> file; absence means unauthenticated
	BackupRoot     string        // directory tree searched for compression-skip markers
	CheckTimeout   time.Duration // per-run budget for service probes
	Addr           string        // agent API bind address
	LogDir         string        // logs directory
	DatabaseURL    string        // empty means in-memory run store
	SuiteFile      string        // YAML probe suite for agent mode
	Interval       time.Duration // agent re-check interval; 0 disables the loop
	Concurrency    int           // max probes in flight per agent pass
}

func FromEnv() Config {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	credFile := os.Getenv("CREDENTIAL_FILE")
	if credFile == "" {
		credFile = "/opt/sysadmws/redis/redaspass.conf"
	}

	backupRoot := os.Getenv("BACKUP_ROOT")
	if backupRoot == "" {
		backupRoot = "/var/backups/rsnapshot"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("CHECK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	interval := time.Duration(0)
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	concurrency := 2
	if v := os.Getenv("MAX_CONCURRENT_CHECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}

	return Config{
		RedisAddr:      redisAddr,
		CredentialFile: credFile,
		BackupRoot:     backupRoot,
		CheckTimeout:   timeout,
		Addr:           addr,
		LogDir:         logDir,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SuiteFile:      os.Getenv("SUITE_FILE"),
		Interval:       interval,
		Concurrency:    concurrency,
	}
}
