package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration operations",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after defaults, the config file and ARMOR_*
environment variables are applied. The database password is never shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			row := func(key string, value any) {
				fmt.Fprintf(w, "%s\t%v\n", key, value)
			}
			row("database.type", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				row("database.path", cfg.Database.Path)
			} else {
				row("database.host", cfg.Database.Host)
				row("database.port", cfg.Database.Port)
				row("database.user", cfg.Database.User)
				row("database.name", cfg.Database.Name)
				row("database.sslmode", cfg.Database.SSLMode)
				if cfg.Database.URL != "" {
					row("database.url", "(set)")
				}
			}
			row("dataset.bundled_path", orEmbedded(cfg.Dataset.BundledPath))
			row("dataset.sources_path", orEmbedded(cfg.Dataset.SourcesPath))
			row("dataset.url", cfg.Dataset.URL)
			row("dataset.timeout", cfg.Dataset.Timeout)
			row("dataset.rate_limit", fmt.Sprintf("%d/s burst %d", cfg.Dataset.RateLimit.Requests, cfg.Dataset.RateLimit.Burst))
			row("dataset.retry", fmt.Sprintf("%d attempts, base %s", cfg.Dataset.Retry.MaxAttempts, cfg.Dataset.Retry.BackoffBase))
			row("backup.max_size_bytes", cfg.Backup.MaxSizeBytes)
			row("backup.max_depth", cfg.Backup.MaxDepth)
			row("backup.export_dir", cfg.Backup.ExportDir)
			row("session.lock_file", cfg.Session.LockFile)
			row("session.locale", cfg.Session.Locale)
			row("logging.level", cfg.Logging.Level)
			row("logging.format", cfg.Logging.Format)
			row("logging.output", cfg.Logging.Output)
			row("metrics.textfile_path", cfg.Metrics.TextfilePath)
			return w.Flush()
		},
	}
}

func orEmbedded(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}
