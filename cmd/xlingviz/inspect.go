package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"xlingviz/internal/projector"
)

var (
	inspectDir string
	inspectTop int
)

func init() {
	inspectCmd.Flags().StringVar(&inspectDir, "dir", "", "Directory holding the table pair (default from config)")
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "Number of most frequent primary labels to list")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <stem>",
	Short: "Check that an exported table pair is aligned and summarise it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := projector.Load(firstNonEmpty(inspectDir, appCfg.Output.ExportDir), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(args[0], ds, inspectTop))
		return nil
	},
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	summaryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderSummary(stem string, ds *projector.Dataset, top int) string {
	s := ds.Summary()
	var b strings.Builder
	b.WriteString(summaryTitle.Render(stem))
	fmt.Fprintf(&b, "\nrows %d  dimension %d  columns %s / %s\n", s.Rows, s.Dimension, s.Header[0], s.Header[1])
	b.WriteString(summaryMuted.Render("by " + s.Header[1]))
	for _, c := range s.BySecondary {
		fmt.Fprintf(&b, "\n  %-16s %d", c.Label, c.Rows)
	}
	counts := ds.PrimaryCounts()
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}
	b.WriteString("\n" + summaryMuted.Render("top "+s.Header[0]))
	for _, c := range counts {
		fmt.Fprintf(&b, "\n  %-16s %d", c.Label, c.Rows)
	}
	return summaryBox.Render(b.String())
}
