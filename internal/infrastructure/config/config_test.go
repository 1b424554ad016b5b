package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "tracker.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, int64(1024*1024), cfg.Backup.MaxSizeBytes)
	assert.Equal(t, 32, cfg.Backup.MaxDepth)
	assert.Equal(t, 10*time.Second, cfg.Dataset.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "en", cfg.Session.Locale)
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: sqlite
  path: ":memory:"
backup:
  max_size_bytes: 2048
logging:
  level: info
`), 0o644))
	t.Setenv("ARMOR_LOGGING_LEVEL", "debug")
	t.Setenv("ARMOR_SESSION_LOCALE", "fr")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, int64(2048), cfg.Backup.MaxSizeBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "fr", cfg.Session.Locale)
}

func TestValidateConfig_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"unknown database", func(cfg *config.Config) { cfg.Database.Type = "mysql" }},
		{"bad dataset url", func(cfg *config.Config) { cfg.Dataset.URL = "not a url" }},
		{"file output without path", func(cfg *config.Config) { cfg.Logging.Output = "file" }},
		{"bad locale", func(cfg *config.Config) { cfg.Session.Locale = "???" }},
		{"tiny depth", func(cfg *config.Config) { cfg.Backup.MaxDepth = 2 }},
		{"sqlite without path", func(cfg *config.Config) { cfg.Database.Path = "" }},
		{"postgres without host", func(cfg *config.Config) {
			cfg.Database.Type = "postgres"
			cfg.Database.Host = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			err := config.ValidateConfig(cfg)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateConfig_ReportsConfigKeys(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Backup.MaxDepth = 2

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup.max_depth failed validation: min")
}

func TestLoadConfigOrDefault_FallsBackOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [broken"), 0o644))

	cfg := config.LoadConfigOrDefault(path)

	assert.Equal(t, "sqlite", cfg.Database.Type)
}
