package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// SimpleUI implements UI using the cobra command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

var (
	deadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	usedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

const (
	deadLabel = "DEAD"
	usedLabel = "USED"
)

// DisplayInventorySummary renders one row per discovered enum.
func (s *SimpleUI) DisplayInventorySummary(ctx context.Context, inv m.Inventory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(inv.Items) == 0 {
		s.printf("No qualifying enums found under %s\n", inv.Base)
		return nil
	}

	s.printf("\n%s", renderInventoryTable(inv))

	return nil
}

func renderInventoryTable(inv m.Inventory) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Type", "Path", "Variants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, item := range inv.Items {
		table.Append([]string{item.Module, item.Name, string(item.Path), fmt.Sprintf("%d", len(item.Variants))})
	}

	table.SetFooter([]string{
		"",
		"",
		fmt.Sprintf("Total Enums %d", len(inv.Items)),
		fmt.Sprintf("%d", inv.VariantCount()),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayUsageSummary renders one row per (type, variant) record with its
// occurrence count and a dead/used verdict.
func (s *SimpleUI) DisplayUsageSummary(ctx context.Context, records []m.UsageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(records) == 0 {
		s.printf("Usage report is empty\n")
		return nil
	}

	s.printf("\n%s", renderUsageTable(records))

	return nil
}

func renderUsageTable(records []m.UsageRecord) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Domain", "Variant", "Occurrences", "Verdict"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	dead := 0

	for _, record := range records {
		verdict := usedStyle.Render(usedLabel)
		if record.Dead() {
			verdict = deadStyle.Render(deadLabel)
			dead++
		}

		table.Append([]string{
			record.Domain,
			record.EventType + "::" + record.Variant,
			fmt.Sprintf("%d", len(record.Occurrences)),
			verdict,
		})
	}

	table.SetFooter([]string{
		"",
		fmt.Sprintf("Total Variants %d", len(records)),
		"",
		fmt.Sprintf("Dead %d", dead),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayMatchingInfo shows the usage phase settings before searching.
func (s *SimpleUI) DisplayMatchingInfo(ctx context.Context, variants, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Matching %d variant(s) with %d worker(s)\n", variants, workers)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
