package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all levels, inventory and view preferences",
		Long: `Reset every armor level and material quantity to zero and restore the
default view preferences. The dataset is kept.

This cannot be undone; export a backup first if you may want it back.

Examples:
  armor-tracker reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset progress without --yes")
			}
			return withApp(cmd, func(a *app) error {
				if _, err := a.send(&commands.ResetProgressCommand{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")

	return cmd
}
