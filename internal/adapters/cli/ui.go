package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
)

// NewUICommand creates the ui command with subcommands
func NewUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "View preference operations",
		Long: `Change the saved view preferences that are exported with backups and used
as defaults by "materials list".`,
	}

	cmd.AddCommand(newUISetCommand())

	return cmd
}

func newUISetCommand() *cobra.Command {
	var (
		toggleCategory string
		togglePiece    string
		showAllLevels  bool
		tab            string
		deficitsOnly   bool
		sortBy         string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change view preferences",
		Long: `Change view preferences. Only the flags given are changed.

Examples:
  armor-tracker ui set --deficits-only --sort alpha
  armor-tracker ui set --toggle-category "Hylian Set"
  armor-tracker ui set --toggle-piece hylian-hood --show-all-levels=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &commands.UpdateUIPrefsCommand{
				ToggleCategory: toggleCategory,
				TogglePiece:    togglePiece,
			}
			flags := cmd.Flags()
			if flags.Changed("show-all-levels") {
				req.ShowAllLevels = &showAllLevels
			}
			if flags.Changed("tab") {
				req.ActiveTab = &tab
			}
			if flags.Changed("deficits-only") {
				req.DeficitsOnly = &deficitsOnly
			}
			if flags.Changed("sort") {
				req.Sort = &sortBy
			}

			return withApp(cmd, func(a *app) error {
				resp, err := a.send(req)
				if err != nil {
					return err
				}
				displayUIPrefs(cmd, resp.(progress.UIPrefs))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&toggleCategory, "toggle-category", "", "Open or close a category")
	cmd.Flags().StringVar(&togglePiece, "toggle-piece", "", "Open or close an armor piece")
	cmd.Flags().BoolVar(&showAllLevels, "show-all-levels", false, "Show every level instead of the next one")
	cmd.Flags().StringVar(&tab, "tab", "", "Active tab")
	cmd.Flags().BoolVar(&deficitsOnly, "deficits-only", false, "Only list materials you are short of")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Material sort order: needed, alpha or category")

	return cmd
}

func displayUIPrefs(cmd *cobra.Command, ui progress.UIPrefs) {
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Open categories:\t%s\n", joinOrDash(ui.OpenCats))
	fmt.Fprintf(w, "Open pieces:\t%s\n", joinOrDash(ui.OpenPieces))
	fmt.Fprintf(w, "Show all levels:\t%t\n", ui.ShowAllLevels)
	if ui.ActiveTab != "" {
		fmt.Fprintf(w, "Active tab:\t%s\n", ui.ActiveTab)
	}
	if ui.Materials != nil {
		fmt.Fprintf(w, "Deficits only:\t%t\n", ui.Materials.DeficitsOnly)
		fmt.Fprintf(w, "Sort:\t%s\n", ui.Materials.Sort)
	}
	w.Flush()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
