package domain

import "fmt"

// EmbeddingSource is a pretrained word-vector file and the language its words belong to.
type EmbeddingSource struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language"`
}

// EmbeddingRecord is one token with its vector components kept as the
// source text, so they can be written back without reformatting.
type EmbeddingRecord struct {
	Token  string
	Fields []string
}

// LabelRecord is the label row written alongside every vector row:
// (token, language) for words and (topic, language) for documents.
type LabelRecord struct {
	Primary   string
	Secondary string
}

// DocumentGroup holds the document vectors and class codes of one language corpus.
type DocumentGroup struct {
	Language string      `yaml:"language"`
	Vectors  [][]float64 `yaml:"vectors"`
	Labels   []int       `yaml:"labels"`
}

// TopicLabelSet maps class codes (the slice index) to topic names.
type TopicLabelSet []string

// DefaultTopics is the RCV1 top-level topic set used by the classifier.
var DefaultTopics = TopicLabelSet{"CCAT", "ECAT", "GCAT", "MCAT"}

// Name resolves a class code. ok is false for codes outside the set.
func (s TopicLabelSet) Name(code int) (name string, ok bool) {
	if code < 0 || code >= len(s) {
		return "", false
	}
	return s[code], true
}

// String renders the set as {0:CCAT 1:ECAT ...}.
func (s TopicLabelSet) String() string {
	out := "{"
	for i, name := range s {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d:%s", i, name)
	}
	return out + "}"
}

// CountSeries is one bar series in a class-count chart.
type CountSeries struct {
	Label  string `yaml:"label"`
	Counts []int  `yaml:"counts"`
}

// ConfusionMatrix holds counts indexed [true class][predicted class].
type ConfusionMatrix struct {
	Title string  `yaml:"title"`
	Cells [][]int `yaml:"cells"`
}

// TrainingHistory is the per-epoch accuracy and loss of one training run.
type TrainingHistory struct {
	Label    string    `yaml:"label"`
	Accuracy []float64 `yaml:"accuracy"`
	Loss     []float64 `yaml:"loss"`
}

// Neighbor is a row found by a similarity search.
type Neighbor struct {
	Row   int
	Label LabelRecord
	Score float64
}
