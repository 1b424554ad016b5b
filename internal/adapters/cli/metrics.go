package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMetricsCommand creates the metrics command with subcommands
func NewMetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Progress metrics export",
		Long: `Write progress gauges in the Prometheus textfile format, for collection
by the node_exporter textfile collector.

When metrics.textfile_path is configured the file is also refreshed after
every command.`,
	}

	cmd.AddCommand(newMetricsExportCommand())

	return cmd
}

func newMetricsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the metrics textfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				path := output
				if path == "" {
					path = a.cfg.Metrics.TextfilePath
				}
				if path == "" {
					return fmt.Errorf("no output file: pass --output or set metrics.textfile_path")
				}
				if err := a.writeMetrics(path); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Metrics written to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: metrics.textfile_path)")

	return cmd
}
