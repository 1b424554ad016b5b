package config

import "time"

// DatasetConfig controls where the armor dataset and its sources come from
type DatasetConfig struct {
	// Bundled dataset file; empty uses the copy compiled into the binary
	BundledPath string `mapstructure:"bundled_path"`

	// Sources document file; empty uses the compiled-in copy
	SourcesPath string `mapstructure:"sources_path"`

	// Optional remote dataset, tried when no valid copy is persisted
	URL string `mapstructure:"url" validate:"omitempty,url"`

	// Request timeout for the remote dataset
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0,max=10"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
