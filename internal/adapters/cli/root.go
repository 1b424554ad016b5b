package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "armor-tracker",
		Short: "Armor upgrade tracker - plan and record armor upgrades offline",
		Long: `armor-tracker records the upgrade level of every armor piece and the
materials you hold, and works out what is still needed to finish every upgrade.

Progress is stored locally; the dataset comes from the stored copy, an
optional remote URL, or the copy bundled with the binary.

Examples:
  armor-tracker summary
  armor-tracker armor list --category "Hylian Set"
  armor-tracker armor upgrade hylian-hood
  armor-tracker materials list --deficits --sort alpha
  armor-tracker materials set "Chuchu Jelly" 25
  armor-tracker backup export --output backup.json
  armor-tracker backup import backup.json`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml or ~/.armor-tracker/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewSummaryCommand())
	rootCmd.AddCommand(NewArmorCommand())
	rootCmd.AddCommand(NewReadyCommand())
	rootCmd.AddCommand(NewMaterialsCommand())
	rootCmd.AddCommand(NewBackupCommand())
	rootCmd.AddCommand(NewResetCommand())
	rootCmd.AddCommand(NewUICommand())
	rootCmd.AddCommand(NewMetricsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
