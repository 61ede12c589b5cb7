package export

import (
	"strings"

	"go.uber.org/zap"

	"xlingviz/internal/domain"
)

// DefaultOutputDir is where exports land when Options.OutputDir is empty.
const DefaultOutputDir = "mid"

// Options configures a word or document export.
type Options struct {
	// OutputDir receives <stem>_vec.tsv and <stem>_label.tsv. Created if missing.
	OutputDir string
	// MaxPerSource caps the records read from each word-vector file. <= 0 means unbounded.
	MaxPerSource int
	// Topics resolves document class codes. Defaults to domain.DefaultTopics.
	Topics domain.TopicLabelSet
	// Logger receives one progress entry per source or group. Nil keeps the export silent.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if len(o.Topics) == 0 {
		o.Topics = domain.DefaultTopics
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// SourceStat reports what one word-vector file or document group contributed.
type SourceStat struct {
	Name      string // file path, or language for document groups
	Language  string
	Declared  int // record count from the file header; -1 for document groups
	Dimension int
	Rows      int
}

// Result describes a completed export.
type Result struct {
	VectorPath string
	LabelPath  string
	Rows       int
	Dimension  int
	Sources    []SourceStat
}

// checkStem rejects names that cannot be used as a file name prefix.
func checkStem(stem string) error {
	if strings.TrimSpace(stem) == "" {
		return configErrorf("output name stem is empty")
	}
	if strings.ContainsAny(stem, `/\`) {
		return configErrorf("output name stem %q contains a path separator", stem)
	}
	return nil
}

// checkLabel rejects label values that would break the two-column label rows.
func checkLabel(kind, value string) error {
	if value == "" {
		return configErrorf("%s label is empty", kind)
	}
	if strings.ContainsAny(value, "\t\r\n") {
		return configErrorf("%s label %q contains a tab or newline", kind, value)
	}
	return nil
}
