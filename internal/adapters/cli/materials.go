package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/application/progress/queries"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// NewMaterialsCommand creates the materials command with subcommands
func NewMaterialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Material inventory operations",
		Long: `List materials with what is still needed, and record how many you hold.

Materials can be referred to by id or by name. Quantities are clamped to 0-99999.

Examples:
  armor-tracker materials list --deficits
  armor-tracker materials list --search jelly --sort alpha
  armor-tracker materials set amber 12
  armor-tracker materials inc "Chuchu Jelly" 3
  armor-tracker materials dec opal`,
	}

	cmd.AddCommand(newMaterialsListCommand())
	cmd.AddCommand(newMaterialsSetCommand())
	cmd.AddCommand(newMaterialsAdjustCommand("inc", "Add units of a material", 1))
	cmd.AddCommand(newMaterialsAdjustCommand("dec", "Remove units of a material", -1))

	return cmd
}

func newMaterialsListCommand() *cobra.Command {
	var (
		deficits bool
		sortBy   string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List materials with remaining requirements",
		Long: `List every material with the quantity still required, the quantity held
and the difference. Without flags the saved view preferences apply.

Sort orders:
  needed    - largest shortfall first
  alpha     - by name
  category  - by material category, then name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &queries.ListMaterialsQuery{Search: search}
			if cmd.Flags().Changed("deficits") {
				query.DeficitsOnly = &deficits
			}
			if cmd.Flags().Changed("sort") {
				query.Sort = &sortBy
			}

			return withApp(cmd, func(a *app) error {
				resp, err := a.send(query)
				if err != nil {
					return err
				}
				rows := resp.([]requirements.MaterialRow)
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No materials found")
					return nil
				}
				w := newTable(out)
				fmt.Fprintln(w, "ID\tName\tCategory\tRemaining\tHeld\tStatus")
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
						r.Material.ID, r.Material.Name, r.Material.Category, r.Remaining, r.Inventory, formatDiff(r.Diff))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&deficits, "deficits", false, "Only list materials you are short of")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort order: needed, alpha or category")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name, tag or where to find it")

	return cmd
}

func newMaterialsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <material> <quantity>",
		Short: "Record how many units of a material you hold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.SetInventoryCommand{MaterialID: args[0], Quantity: args[1]})
				if err != nil {
					return err
				}
				printInventory(cmd, a, resp.(*commands.InventoryResponse))
				return nil
			})
		},
	}
}

func newMaterialsAdjustCommand(use, short string, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <material> [amount]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return fmt.Errorf("amount must be a non-negative integer, got %q", args[1])
				}
				amount = n
			}

			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&commands.AdjustInventoryCommand{MaterialID: args[0], Delta: sign * amount})
				if err != nil {
					return err
				}
				printInventory(cmd, a, resp.(*commands.InventoryResponse))
				return nil
			})
		},
	}
}

func printInventory(cmd *cobra.Command, a *app, r *commands.InventoryResponse) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d → %d\n", materialName(a.session.Dataset, r.MaterialID), r.Previous, r.Quantity)
}
