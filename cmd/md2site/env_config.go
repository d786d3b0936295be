package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// envPrefix starts every environment variable md2site reads.
const envPrefix = "MD2SITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2SITE_CONFIG: config file path
	InputDir   string        // MD2SITE_INPUT_DIR: site source directory
	OutputDir  string        // MD2SITE_OUTPUT_DIR: rendered site directory
	Workers    int           // MD2SITE_WORKERS: parallel workers
	SiteURL    string        // MD2SITE_SITE_URL: base URL for absURL
	Debounce   time.Duration // MD2SITE_DEBOUNCE: serve rebuild quiet period
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":     true,
	"MD2SITE_INPUT_DIR":  true,
	"MD2SITE_OUTPUT_DIR": true,
	"MD2SITE_WORKERS":    true,
	"MD2SITE_SITE_URL":   true,
	"MD2SITE_DEBOUNCE":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2SITE_CONFIG"),
		InputDir:   os.Getenv("MD2SITE_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2SITE_OUTPUT_DIR"),
		SiteURL:    os.Getenv("MD2SITE_SITE_URL"),
	}

	if workers := os.Getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if debounce := os.Getenv("MD2SITE_DEBOUNCE"); debounce != "" {
		if d, err := time.ParseDuration(debounce); err == nil && d > 0 {
			cfg.Debounce = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for unrecognized MD2SITE_* variables.
// Helps catch typos like MD2SITE_OUTPUT instead of MD2SITE_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}
