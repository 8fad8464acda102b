package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Journal configuration
	if dir := os.Getenv("FOCUSLOG_DIR"); dir != "" {
		cfg.Journal.Dir = dir
	}

	if echo := os.Getenv("FOCUSLOG_ECHO"); echo != "" {
		if val, err := strconv.ParseBool(echo); err == nil {
			cfg.Journal.Echo = val
		}
	}

	// Tracker configuration
	if pollInterval := os.Getenv("FOCUSLOG_POLL_INTERVAL_MS"); pollInterval != "" {
		if ms, err := strconv.Atoi(pollInterval); err == nil && ms > 0 {
			if err := cfg.SetPollInterval(time.Duration(ms) * time.Millisecond); err != nil {
				log.Printf("Ignoring FOCUSLOG_POLL_INTERVAL_MS: %v", err)
			}
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("FOCUSLOG_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Database configuration
	if dbPath := os.Getenv("FOCUSLOG_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
