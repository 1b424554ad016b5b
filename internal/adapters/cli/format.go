package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

const rule = "─────────────────────────────────────────────────────────────────"

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// materialName returns the display name for a material id, or the id itself
func materialName(d *armor.Dataset, id string) string {
	if m, ok := d.Material(id); ok {
		return m.Name
	}
	return id
}

// formatCosts renders "Amber ×2, Opal ×1"
func formatCosts(d *armor.Dataset, costs []requirements.Cost) string {
	if len(costs) == 0 {
		return "-"
	}
	parts := make([]string, len(costs))
	for i, c := range costs {
		parts[i] = fmt.Sprintf("%s ×%d", materialName(d, c.MaterialID), c.Qty)
	}
	return strings.Join(parts, ", ")
}

// levelBar renders a level as filled and empty pips: ●●○○
func levelBar(level int) string {
	return strings.Repeat("●", level) + strings.Repeat("○", max(0, 4-level))
}

func formatDiff(diff int) string {
	if diff >= 0 {
		return fmt.Sprintf("OK +%d", diff)
	}
	return fmt.Sprintf("NEED %d", -diff)
}
