package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/queries"
)

// NewSummaryCommand creates the summary command
func NewSummaryCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show overall upgrade progress",
		Long: `Show completed and remaining upgrade levels, how many materials are short,
the materials with the largest remaining requirement and progress per set category.

Examples:
  armor-tracker summary
  armor-tracker summary --top 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				resp, err := a.send(&queries.GetSummaryQuery{TopLimit: top})
				if err != nil {
					return err
				}
				displaySummary(cmd, a, resp.(*queries.SummaryResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Number of remaining materials to list (default 18)")

	return cmd
}

func displaySummary(cmd *cobra.Command, a *app, s *queries.SummaryResponse) {
	out := cmd.OutOrStdout()
	d := a.session.Dataset

	fmt.Fprintf(out, "\n%s PROGRESS\n", s.Game)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Levels completed:  %d / %d (%.0f%%)\n", s.CompletedLevels, s.TotalLevels, s.Percent())
	fmt.Fprintf(out, "Levels remaining:  %d\n", s.RemainingLevels())
	fmt.Fprintf(out, "Materials short:   %d\n", s.DeficitCount)
	fmt.Fprintf(out, "Last updated:      %s\n", s.LastUpdated)

	if len(s.Categories) > 0 {
		fmt.Fprintln(out, "\nBY CATEGORY")
		w := newTable(out)
		fmt.Fprintln(w, "Category\tPieces\tLevels")
		for _, c := range s.Categories {
			fmt.Fprintf(w, "%s\t%d\t%d / %d\n", c.Category, c.Pieces, c.Completed, c.Total)
		}
		w.Flush()
	}

	if len(s.TopRemaining) == 0 {
		fmt.Fprintln(out, "\nNothing left to collect.")
		return
	}
	fmt.Fprintln(out, "\nSTILL NEEDED")
	w := newTable(out)
	fmt.Fprintln(w, "Material\tRemaining\tHeld\tStatus")
	for _, c := range s.TopRemaining {
		held := a.session.State.Held(c.MaterialID)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", materialName(d, c.MaterialID), c.Qty, held, formatDiff(held-c.Qty))
	}
	w.Flush()
	fmt.Fprintln(out)
}
