package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"xlingviz/internal/domain"
	"xlingviz/internal/export"
)

var (
	docsDataset string
	docsStem    string
	docsOut     string
)

func init() {
	docsCmd.Flags().StringVar(&docsDataset, "dataset", "", "YAML file with document groups (default from config)")
	docsCmd.Flags().StringVar(&docsStem, "stem", "", "Output name stem (default from config)")
	docsCmd.Flags().StringVar(&docsOut, "out", "", "Output directory (default from config)")
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Export document embeddings with topic labels to projector TSV files",
	Long: `Export document embeddings with topic labels to projector TSV files.

The dataset lists one group per language, written in file order:

  groups:
    - language: English
      vectors: [[1.0, 2.0]]
      labels: [0]
    - language: Chinese
      vectors: [[3.0, 4.0]]
      labels: [1]

Label codes index the configured topic set (default CCAT, ECAT, GCAT, MCAT).`,
	Args: cobra.NoArgs,
	RunE: runDocs,
}

// documentDataset is the YAML shape of a document vector dataset.
type documentDataset struct {
	Groups []domain.DocumentGroup `yaml:"groups"`
}

func loadDocumentGroups(path string) ([]domain.DocumentGroup, error) {
	if path == "" {
		return nil, &export.Error{Kind: export.ErrConfig, Msg: "no dataset given: pass --dataset or set documents.dataset in the config"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &export.Error{Kind: export.ErrIO, Path: path, Msg: "reading dataset", Err: err}
	}
	var ds documentDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, &export.Error{Kind: export.ErrFormat, Path: path, Msg: "parsing dataset", Err: err}
	}
	return ds.Groups, nil
}

func runDocs(cmd *cobra.Command, args []string) error {
	groups, err := loadDocumentGroups(firstNonEmpty(docsDataset, appCfg.Documents.Dataset))
	if err != nil {
		return err
	}
	res, err := export.Documents(groups, firstNonEmpty(docsStem, appCfg.Documents.Stem), export.Options{
		OutputDir: firstNonEmpty(docsOut, appCfg.Output.ExportDir),
		Topics:    appCfg.TopicSet(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("document export: %w", err)
	}
	printResult(cmd, res)
	return nil
}
