package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xlingviz/internal/export"
)

var (
	wordsFiles     []string
	wordsLanguages []string
	wordsStem      string
	wordsOut       string
	wordsMax       int
)

func init() {
	wordsCmd.Flags().StringArrayVar(&wordsFiles, "file", nil, "Word-vector file (repeatable, paired with --lang by position)")
	wordsCmd.Flags().StringArrayVar(&wordsLanguages, "lang", nil, "Language label of the --file at the same position (repeatable)")
	wordsCmd.Flags().StringVar(&wordsStem, "stem", "", "Output name stem (default from config)")
	wordsCmd.Flags().StringVar(&wordsOut, "out", "", "Output directory (default from config)")
	wordsCmd.Flags().IntVar(&wordsMax, "max", -1, "Maximum records per file, 0 for all (default from config)")
	rootCmd.AddCommand(wordsCmd)
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Export word embeddings to projector TSV files",
	Long: `Export word embeddings to projector TSV files.

Each input is a text .vec file whose first line is "<count> <dimension>".
Without --file the sources listed in the config are used.

Examples:
  xlingviz words --file data/wiki.en.align.vec --lang English \
                 --file data/wiki.zh.align.vec --lang Chinese \
                 --stem Embed_EN_ZH --max 5000`,
	Args: cobra.NoArgs,
	RunE: runWords,
}

func runWords(cmd *cobra.Command, args []string) error {
	files, languages := wordsFiles, wordsLanguages
	if len(files) == 0 && len(languages) == 0 {
		for _, src := range appCfg.Words.Sources {
			files = append(files, src.Path)
			languages = append(languages, src.Language)
		}
	}
	opts := export.Options{
		OutputDir:    firstNonEmpty(wordsOut, appCfg.Output.ExportDir),
		MaxPerSource: appCfg.Words.MaxPerSource,
		Logger:       logger,
	}
	if wordsMax >= 0 {
		opts.MaxPerSource = wordsMax
	}
	res, err := export.Words(files, languages, firstNonEmpty(wordsStem, appCfg.Words.Stem), opts)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

func printResult(cmd *cobra.Command, res *export.Result) {
	out := cmd.OutOrStdout()
	for _, s := range res.Sources {
		fmt.Fprintf(out, "%-40s %-10s %8d rows\n", s.Name, s.Language, s.Rows)
	}
	fmt.Fprintf(out, "wrote %d rows of dimension %d\n  %s\n  %s\n", res.Rows, res.Dimension, res.VectorPath, res.LabelPath)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
