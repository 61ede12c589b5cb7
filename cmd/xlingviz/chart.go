package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xlingviz/internal/chart"
)

var (
	chartOut      string
	chartNoScript bool
)

func init() {
	chartCmd.PersistentFlags().StringVar(&chartOut, "out", "", "Directory for gnuplot scripts (default from config)")
	chartCmd.PersistentFlags().BoolVar(&chartNoScript, "no-script", false, "Only render to the terminal")
	chartCmd.AddCommand(chartBarsCmd, chartConfusionCmd, chartHistoryCmd)
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render classification charts from YAML data files",
	Long: `Render classification charts from YAML data files.

Each chart is drawn on the terminal and written as a self-contained gnuplot
script to the chart directory. The script writes its PNG next to itself when
run from the current directory:

  xlingviz chart bars examples/counts.yaml
  gnuplot "output/Unique_words_count.plt"   # -> output/Unique_words_count.png`,
}

var chartBarsCmd = &cobra.Command{
	Use:   "bars <data.yaml>",
	Short: "Grouped bar chart of per-class counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chart.LoadBars(args[0])
		if err != nil {
			return err
		}
		return emitChart(cmd, c)
	},
}

var chartConfusionCmd = &cobra.Command{
	Use:   "confusion <data.yaml>",
	Short: "Grid of confusion matrices, four per row, with score summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := chart.LoadConfusion(args[0])
		if err != nil {
			return err
		}
		return emitChart(cmd, g)
	},
}

var chartHistoryCmd = &cobra.Command{
	Use:   "history <data.yaml>",
	Short: "Training accuracy and loss curves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chart.LoadHistory(args[0])
		if err != nil {
			return err
		}
		return emitChart(cmd, c)
	},
}

func emitChart(cmd *cobra.Command, c chart.Chart) error {
	fmt.Fprintln(cmd.OutOrStdout(), c.Render())
	if chartNoScript {
		return nil
	}
	path, err := chart.WriteGnuplot(firstNonEmpty(chartOut, appCfg.Output.ChartDir), c)
	if err != nil {
		return err
	}
	logger.Info("wrote gnuplot script", zap.String("title", c.Title()), zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "gnuplot script: %s\n", path)
	return nil
}
