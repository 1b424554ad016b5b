package config

import (
	"os"
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	home, err := HomeDir()
	if err != nil {
		home = filepath.Join(os.TempDir(), "armor-tracker")
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(home, "tracker.db")
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "armor_tracker"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Dataset defaults
	if cfg.Dataset.Timeout == 0 {
		cfg.Dataset.Timeout = 10 * time.Second
	}
	if cfg.Dataset.RateLimit.Requests == 0 {
		cfg.Dataset.RateLimit.Requests = 2
	}
	if cfg.Dataset.RateLimit.Burst == 0 {
		cfg.Dataset.RateLimit.Burst = 2
	}
	if cfg.Dataset.Retry.MaxAttempts == 0 {
		cfg.Dataset.Retry.MaxAttempts = 2
	}
	if cfg.Dataset.Retry.BackoffBase == 0 {
		cfg.Dataset.Retry.BackoffBase = 500 * time.Millisecond
	}

	// Backup defaults
	if cfg.Backup.MaxSizeBytes == 0 {
		cfg.Backup.MaxSizeBytes = 1024 * 1024
	}
	if cfg.Backup.MaxDepth == 0 {
		cfg.Backup.MaxDepth = 32
	}
	if cfg.Backup.ExportDir == "" {
		cfg.Backup.ExportDir = "."
	}

	// Session defaults
	if cfg.Session.LockFile == "" {
		cfg.Session.LockFile = filepath.Join(home, "tracker.lock")
	}
	if cfg.Session.Locale == "" {
		cfg.Session.Locale = "en"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}
