package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from DOCPRESS_* environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
// Precedence: flags > environment > configuration files.
type envConfig struct {
	ConfigPath  string // DOCPRESS_CONFIG: extra configuration file
	Writer      string // DOCPRESS_WRITER: html or text
	OutputDir   string // DOCPRESS_OUTPUT_DIR: directory for relative outputs
	ReportLevel int    // DOCPRESS_REPORT_LEVEL: 0-10, -1 when unset
	HaltLevel   int    // DOCPRESS_HALT_LEVEL: 0-10, -1 when unset
}

// knownEnvVars lists valid DOCPRESS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCPRESS_CONFIG":       true,
	"DOCPRESS_WRITER":       true,
	"DOCPRESS_OUTPUT_DIR":   true,
	"DOCPRESS_REPORT_LEVEL": true,
	"DOCPRESS_HALT_LEVEL":   true,
}

// loadEnvConfig reads DOCPRESS_* variables. Malformed numeric values are
// reported as usage errors rather than silently ignored.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{ReportLevel: -1, HaltLevel: -1}
	cfg.ConfigPath = os.Getenv("DOCPRESS_CONFIG")
	cfg.Writer = os.Getenv("DOCPRESS_WRITER")
	cfg.OutputDir = os.Getenv("DOCPRESS_OUTPUT_DIR")

	var err error
	if cfg.ReportLevel, err = envLevel("DOCPRESS_REPORT_LEVEL"); err != nil {
		return nil, err
	}
	if cfg.HaltLevel, err = envLevel("DOCPRESS_HALT_LEVEL"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envLevel(name string) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 10 {
		return -1, fmt.Errorf("%w: %s=%q is not a severity 0-10", errUsage, name, raw)
	}
	return n, nil
}

// warnUnknownEnvVars prints a warning for every DOCPRESS_* variable that is not
// recognized, catching typos like DOCPRESS_REPORTLEVEL.
func warnUnknownEnvVars(dest io.Writer) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "DOCPRESS_") && !knownEnvVars[name] {
			fmt.Fprintf(dest, "warning: unknown environment variable %s\n", name)
		}
	}
}
