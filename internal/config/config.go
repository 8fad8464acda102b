package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Journal configuration
	Journal JournalConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Database configuration
	Database DatabaseConfig
}

// JournalConfig holds where and how focus changes are written
type JournalConfig struct {
	Dir  string // Directory holding focus_log_YYYYMMDD.txt files
	Echo bool   // Also print each record to stdout
}

// TrackerConfig holds polling behavior configuration
type TrackerConfig struct {
	PollInterval    time.Duration // How often to check focused window
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// DatabaseConfig holds the optional SQLite mirror configuration
type DatabaseConfig struct {
	Path string // Empty disables the mirror
}

// Enabled reports whether records are mirrored to SQLite
func (d DatabaseConfig) Enabled() bool {
	return d.Path != ""
}

// DefaultJournalDir returns ~/focus_logs
func DefaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focus_logs"
	}
	return filepath.Join(home, "focus_logs")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Dir:  DefaultJournalDir(),
			Echo: true,
		},
		Tracker: TrackerConfig{
			PollInterval:    100 * time.Millisecond,
			MinPollInterval: 10 * time.Millisecond,
			MaxPollInterval: 10 * time.Second,
		},
		Daemon: DaemonConfig{
			PIDFile: filepath.Join(os.TempDir(), fmt.Sprintf("focuslog-%d.pid", os.Getuid())),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.Dir == "" {
		return fmt.Errorf("journal directory cannot be empty")
	}

	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	dbPath := c.Database.Path
	if !c.Database.Enabled() {
		dbPath = "(disabled)"
	}

	return fmt.Sprintf(`Configuration:
  Journal:
    Directory: %s
    Echo: %v
  Tracker:
    Poll Interval: %v
    Min Interval: %v
    Max Interval: %v
  Daemon:
    PID File: %s
  Database:
    Path: %s`,
		c.Journal.Dir,
		c.Journal.Echo,
		c.Tracker.PollInterval,
		c.Tracker.MinPollInterval,
		c.Tracker.MaxPollInterval,
		c.Daemon.PIDFile,
		dbPath,
	)
}
