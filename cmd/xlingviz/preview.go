package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xlingviz/internal/projector"
	"xlingviz/internal/tui"
	"xlingviz/internal/vectorstore/memory"
)

var (
	previewDir string
	previewTop int
)

func init() {
	previewCmd.Flags().StringVar(&previewDir, "dir", "", "Directory holding the table pair (default from config)")
	previewCmd.Flags().IntVar(&previewTop, "neighbors", tui.DefaultNeighbors, "Neighbours listed per match")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <stem>",
	Short: "Browse nearest neighbours of an exported table pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := projector.Load(firstNonEmpty(previewDir, appCfg.Output.ExportDir), args[0])
		if err != nil {
			return err
		}
		store := memory.NewStorage()
		if err := store.Init(ds.Dimension()); err != nil {
			return err
		}
		if err := store.Upsert(ds.Labels, ds.Vectors); err != nil {
			return fmt.Errorf("failed to index vectors: %w", err)
		}
		s := ds.Summary()
		logger.Debug("indexed table pair", zap.String("stem", args[0]), zap.Int("rows", s.Rows), zap.Int("dimension", s.Dimension))

		summary := fmt.Sprintf("%s: %d rows, dimension %d", args[0], s.Rows, s.Dimension)
		p := tea.NewProgram(tui.New(store, summary, previewTop), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		return nil
	},
}
