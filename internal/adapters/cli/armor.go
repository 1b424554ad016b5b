package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/application/progress/queries"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// NewArmorCommand creates the armor command with subcommands
func NewArmorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armor",
		Short: "Armor piece operations",
		Long: `List armor pieces, inspect their upgrade tables and record upgrades.

Pieces can be referred to by id or by name.

Examples:
  armor-tracker armor list
  armor-tracker armor show hylian-hood
  armor-tracker armor set-level "Hylian Hood" 2
  armor-tracker armor upgrade hylian-hood`,
	}

	cmd.AddCommand(newArmorListCommand())
	cmd.AddCommand(newArmorShowCommand())
	cmd.AddCommand(newArmorSetLevelCommand())
	cmd.AddCommand(newArmorUpgradeCommand())

	return cmd
}

func newArmorListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List armor pieces with their levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&queries.ListArmorQuery{Category: category})
				if err != nil {
					return err
				}
				rows := resp.([]queries.ArmorRow)
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No armor pieces found")
					return nil
				}
				w := newTable(out)
				fmt.Fprintln(w, "ID\tName\tSlot\tCategory\tSet\tLevel\t")
				for _, r := range rows {
					ready := ""
					if r.Ready {
						ready = "ready"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.Piece.ID, r.Piece.Name, r.Piece.Slot, r.Piece.Category(), r.Piece.Set(), levelBar(r.Level), ready)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list pieces of this set category")

	return cmd
}

func newArmorShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <piece>",
		Short: "Show a piece's upgrade table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&queries.GetPieceQuery{PieceID: args[0]})
				if err != nil {
					return err
				}
				p := resp.(*queries.PieceResponse)
				out := cmd.OutOrStdout()

				fmt.Fprintf(out, "\n%s (%s)\n", p.Piece.Name, p.Piece.ID)
				fmt.Fprintln(out, rule)
				fmt.Fprintf(out, "Slot:     %s\n", p.Piece.Slot)
				fmt.Fprintf(out, "Set:      %s / %s\n", p.Piece.Category(), p.Piece.Set())
				if p.Piece.Effect != "" {
					fmt.Fprintf(out, "Effect:   %s\n", p.Piece.Effect)
				}
				if src := p.Piece.Source; src != nil {
					if src.Where != "" {
						fmt.Fprintf(out, "Where:    %s\n", src.Where)
					}
					if len(src.Regions) > 0 {
						fmt.Fprintf(out, "Regions:  %s\n", strings.Join(src.Regions, ", "))
					}
				}
				fmt.Fprintf(out, "Level:    %s %d/4\n\n", levelBar(p.Level), p.Level)

				w := newTable(out)
				fmt.Fprintln(w, "Level\tCost\tStatus")
				for _, l := range p.Levels {
					status := ""
					switch {
					case l.Done:
						status = "done"
					case l.Ready:
						status = "ready"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", l.Level, formatCosts(a.session.Dataset, l.Costs), status)
				}
				return w.Flush()
			})
		},
	}
}

func newArmorSetLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-level <piece> <level>",
		Short: "Record a piece's level without spending materials",
		Long: `Record a piece's level directly. Values are clamped to 0-4 and no
materials are deducted; use "armor upgrade" to pay for a level.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.SetLevelCommand{PieceID: args[0], Level: args[1]})
				if err != nil {
					return err
				}
				r := resp.(*commands.SetLevelResponse)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: level %d → %d\n", r.PieceID, r.Previous, r.Level)
				return nil
			})
		},
	}
}

func newArmorUpgradeCommand() *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "upgrade <piece>",
		Short: "Pay for a piece's next level out of inventory",
		Long: `Deduct the materials of the next level from inventory and raise the piece
by one level. Nothing changes unless every material is held in full.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.QuickUpgradeCommand{PieceID: args[0], Target: target})
				var blocked *shared.UpgradeBlockedError
				if errors.As(err, &blocked) {
					fmt.Fprintf(cmd.OutOrStdout(), "Not enough materials for %s level %d\n", blocked.PieceID, blocked.Target)
				}
				if err != nil {
					return err
				}
				r := resp.(*commands.QuickUpgradeResponse)
				fmt.Fprintf(cmd.OutOrStdout(), "%s upgraded to level %d (paid %s)\n",
					r.PieceID, r.Level, formatCosts(a.session.Dataset, r.Paid))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&target, "to", 0, "Target level (default: next level)")

	return cmd
}

// NewReadyCommand creates the ready command
func NewReadyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "List upgrades that can be paid for right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&queries.ListReadyUpgradesQuery{})
				if err != nil {
					return err
				}
				ready := resp.([]requirements.ReadyUpgrade)
				out := cmd.OutOrStdout()
				if len(ready) == 0 {
					fmt.Fprintln(out, "No upgrades are ready")
					return nil
				}
				w := newTable(out)
				fmt.Fprintln(w, "Piece\tLevel\tCost")
				for _, r := range ready {
					name := r.PieceID
					if p, ok := a.session.Dataset.Piece(r.PieceID); ok {
						name = p.Name
					}
					fmt.Fprintf(w, "%s\t%d\t%s\n", name, r.Level, formatCosts(a.session.Dataset, r.Costs))
				}
				return w.Flush()
			})
		},
	}
}
