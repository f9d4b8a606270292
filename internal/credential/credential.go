// Package credential loads the optional authentication secret a probe
// uses to talk to its target. An absent file means "run unauthenticated";
// a present but malformed file is a hard error so a check that was meant
// to be authenticated never silently degrades.
package credential

import (
	"fmt"
	"os"
	"strings"
)

const key = "AUTH"

// Credential is a read-once secret held in memory for the process
// lifetime, never persisted or logged.
type Credential struct {
	Secret  string
	Present bool
}

// ConfigError reports a credential file that exists but cannot be used.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("credential file %s: %s", e.Path, e.Reason)
}

// Load reads a single-line AUTH=<secret> assignment from path.
// A missing file is not an error.
func Load(path string) (Credential, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Credential{}, nil
	}
	if err != nil {
		return Credential{}, &ConfigError{Path: path, Reason: err.Error()}
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, found := strings.CutPrefix(line, key+"=")
		if !found {
			continue
		}
		if v == "" {
			return Credential{}, &ConfigError{Path: path, Reason: "empty " + key + " value"}
		}
		return Credential{Secret: v, Present: true}, nil
	}
	return Credential{}, &ConfigError{Path: path, Reason: key + "= assignment missing"}
}
