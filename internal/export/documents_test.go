package export

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlingviz/internal/domain"
)

func TestDocumentPair_Demo(t *testing.T) {
	out := t.TempDir()
	res, err := DocumentPair(
		[][]float64{{1.0, 2.0}}, []int{0},
		[][]float64{{3.0, 4.0}}, []int{1},
		"demo", Options{OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, []string{"Topic\tLanguage", "CCAT\tEnglish", "ECAT\tChinese"}, readLines(t, res.LabelPath))
	assert.Equal(t, []string{"1.0000\t2.0000", "3.0000\t4.0000"}, readLines(t, res.VectorPath))
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Dimension)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, LanguageEnglish, res.Sources[0].Language)
	assert.Equal(t, LanguageChinese, res.Sources[1].Language)
}

func TestDocuments_GroupAndRowOrder(t *testing.T) {
	groups := []domain.DocumentGroup{
		{Language: "English", Vectors: [][]float64{{0.1}, {0.2}, {0.3}}, Labels: []int{3, 2, 1}},
		{Language: "Chinese", Vectors: [][]float64{{-0.4}, {0.5}}, Labels: []int{0, 3}},
		{Language: "Spanish", Vectors: nil, Labels: nil},
	}
	res, err := Documents(groups, "order", Options{OutputDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Topic\tLanguage",
		"MCAT\tEnglish", "GCAT\tEnglish", "ECAT\tEnglish",
		"CCAT\tChinese", "MCAT\tChinese",
	}, readLines(t, res.LabelPath))
	assert.Equal(t, []string{"0.1000", "0.2000", "0.3000", "-0.4000", "0.5000"}, readLines(t, res.VectorPath))
}

func TestDocuments_CustomTopics(t *testing.T) {
	groups := []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1}}, Labels: []int{1}}}
	res, err := Documents(groups, "custom", Options{OutputDir: t.TempDir(), Topics: domain.TopicLabelSet{"sports", "politics"}})
	require.NoError(t, err)
	assert.Equal(t, "politics\tEnglish", readLines(t, res.LabelPath)[1])
}

func TestDocuments_Errors(t *testing.T) {
	tests := []struct {
		name   string
		groups []domain.DocumentGroup
		is     func(error) bool
	}{
		{"label code 4", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1}}, Labels: []int{4}}}, IsFormatError},
		{"label code -1", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1}}, Labels: []int{-1}}}, IsFormatError},
		{"length mismatch", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1}, {2}}, Labels: []int{0}}}, IsConfigError},
		{"empty vector", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{}}, Labels: []int{0}}}, IsConfigError},
		{"ragged rows across groups", []domain.DocumentGroup{
			{Language: "English", Vectors: [][]float64{{1, 2}}, Labels: []int{0}},
			{Language: "Chinese", Vectors: [][]float64{{1, 2, 3}}, Labels: []int{0}},
		}, IsConfigError},
		{"nan", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{math.NaN()}}, Labels: []int{0}}}, IsValueError},
		{"inf", []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1, math.Inf(-1)}}, Labels: []int{0}}}, IsValueError},
		{"no groups", nil, IsConfigError},
		{"empty language", []domain.DocumentGroup{{Language: "", Vectors: [][]float64{{1}}, Labels: []int{0}}}, IsConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "mid")
			_, err := Documents(tt.groups, "bad", Options{OutputDir: out})
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected kind: %v", err)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "validation failures must not touch the output directory")
		})
	}
}

func TestDocuments_InvalidTopicNames(t *testing.T) {
	groups := []domain.DocumentGroup{{Language: "English", Vectors: [][]float64{{1}}, Labels: []int{0}}}
	tests := []struct {
		name   string
		topics domain.TopicLabelSet
	}{
		{"newline", domain.TopicLabelSet{"CC\nAT"}},
		{"tab", domain.TopicLabelSet{"CCAT", "EC\tAT"}},
		{"empty", domain.TopicLabelSet{"CCAT", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "mid")
			_, err := Documents(groups, "bad", Options{OutputDir: out, Topics: tt.topics})
			require.Error(t, err)
			assert.True(t, IsConfigError(err), "unexpected kind: %v", err)
			assert.NoDirExists(t, out)
		})
	}
}

func TestFormatComponent_Idempotent(t *testing.T) {
	values := []float64{0, 1, -1, 0.00005, -0.00005, 0.12345, 123456.78915, 1e-9, -2.5e10, 0.99995}
	for _, v := range values {
		t.Run(strconv.FormatFloat(v, 'g', -1, 64), func(t *testing.T) {
			first := FormatComponent(v)
			parsed, err := strconv.ParseFloat(first, 64)
			require.NoError(t, err)
			assert.Equal(t, first, FormatComponent(parsed))
			parts := strings.SplitN(strings.TrimPrefix(first, "-"), ".", 2)
			require.Len(t, parts, 2)
			assert.Len(t, parts[1], 4)
		})
	}
}
