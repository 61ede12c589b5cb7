// Package main provides the xlingviz CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xlingviz/internal/config"
	"xlingviz/internal/logging"
)

var (
	cfgPath   string
	logLevel  string
	logFormat string

	appCfg *config.AppConfig
	logger = zap.NewNop()
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "xlingviz",
	Short: "Visualization helpers for cross-lingual text classification",
	Long: `xlingviz turns embeddings and classifier outputs into plot-ready artifacts.

  words      export word vectors to <stem>_vec.tsv / <stem>_label.tsv
  docs       export document vectors with their topic labels
  chart      render class counts, confusion matrices and training curves
  inspect    check and summarise an exported table pair
  preview    browse nearest neighbours of an exported table pair

The TSV pairs load directly into https://projector.tensorflow.org/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default: $XLINGVIZ_CONFIG, ./xlingviz.yaml, ~/.config/xlingviz/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgPath == "" {
		appCfg, _, err = config.LoadDefault()
	} else {
		appCfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		appCfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		appCfg.Logging.Format = logFormat
	}
	l, err := logging.New(appCfg.Logging.Level, appCfg.Logging.Format)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
