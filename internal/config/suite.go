package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/djooberlee/microdevops-utils/internal/credential"
	"github.com/djooberlee/microdevops-utils/internal/probe"
)

// SuiteFile declares the probes an agent runs, one entry per probe.
type SuiteFile struct {
	Probes []ProbeSpec `yaml:"probes"`
}

type ProbeSpec struct {
	Kind      string `yaml:"kind"` // "redis" or "backup-marker"
	Addr      string `yaml:"addr,omitempty"`
	Counter   string `yaml:"counter,omitempty"`
	Root      string `yaml:"root,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`
	TimeoutMS int    `yaml:"timeout_ms,omitempty"`
}

// LoadSuite parses a YAML suite declaration.
func LoadSuite(path string) (*SuiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SuiteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	if len(sf.Probes) == 0 {
		return nil, fmt.Errorf("suite %s declares no probes", path)
	}
	for i, p := range sf.Probes {
		if p.Kind != "redis" && p.Kind != "backup-marker" {
			return nil, fmt.Errorf("suite %s probe %d: unknown kind %q", path, i, p.Kind)
		}
	}
	return &sf, nil
}

// Build turns the declaration into runnable probes, using defaults from
// cfg where an entry leaves a field empty. The credential applies to
// service probes only.
func (sf *SuiteFile) Build(cfg Config, cred credential.Credential) []probe.Probe {
	probes := make([]probe.Probe, 0, len(sf.Probes))
	for _, spec := range sf.Probes {
		timeout := cfg.CheckTimeout
		if spec.TimeoutMS > 0 {
			timeout = time.Duration(spec.TimeoutMS) * time.Millisecond
		}
		switch spec.Kind {
		case "redis":
			addr := spec.Addr
			if addr == "" {
				addr = cfg.RedisAddr
			}
			chk := probe.NewRedisCheck(probe.NewGoRedisClient(addr, cred.Secret, timeout), timeout)
			if spec.Counter != "" {
				chk.Counter = spec.Counter
			}
			probes = append(probes, chk)
		case "backup-marker":
			root := spec.Root
			if root == "" {
				root = cfg.BackupRoot
			}
			chk := probe.NewMarkerCheck(root)
			if spec.Pattern != "" {
				chk.Pattern = spec.Pattern
			}
			probes = append(probes, chk)
		}
	}
	return probes
}
