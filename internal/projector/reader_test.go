package projector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlingviz/internal/domain"
	"xlingviz/internal/export"
)

func TestLoad_WordRoundTrip(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	comps := make([]string, 300)
	for i := range comps {
		comps[i] = fmt.Sprintf("0.%04d", i)
	}
	content := "2 300\nhello " + strings.Join(comps, " ") + "\nworld " + strings.Join(comps, " ") + "\n"
	path := filepath.Join(in, "en.vec")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := export.Words([]string{path}, []string{"English"}, "rt", export.Options{OutputDir: out})
	require.NoError(t, err)

	ds, err := Load(out, "rt")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"Word", "Language"}, ds.Header)
	assert.Equal(t, []domain.LabelRecord{{Primary: "hello", Secondary: "English"}, {Primary: "world", Secondary: "English"}}, ds.Labels)
	assert.Equal(t, 300, ds.Dimension())
	assert.InDelta(t, 0.0299, ds.Vectors[1][299], 1e-12)

	raw, err := os.ReadFile(export.VectorPath(out, "rt"))
	require.NoError(t, err)
	first := strings.SplitN(string(raw), "\n", 2)[0]
	assert.Equal(t, comps, strings.Split(first, "\t"))
}

func TestLoad_DocumentSummary(t *testing.T) {
	out := t.TempDir()
	_, err := export.DocumentPair(
		[][]float64{{1, 2}, {3, 4}, {5, 6}}, []int{0, 0, 2},
		[][]float64{{7, 8}}, []int{3},
		"docs", export.Options{OutputDir: out})
	require.NoError(t, err)

	ds, err := Load(out, "docs")
	require.NoError(t, err)
	s := ds.Summary()
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 2, s.Dimension)
	assert.Equal(t, [2]string{"Topic", "Language"}, s.Header)
	assert.Equal(t, []LabelCount{{Label: "English", Rows: 3}, {Label: "Chinese", Rows: 1}}, s.BySecondary)
	assert.Equal(t, []LabelCount{{Label: "CCAT", Rows: 2}, {Label: "GCAT", Rows: 1}, {Label: "MCAT", Rows: 1}}, ds.PrimaryCounts())
}

func TestLoad_Misaligned(t *testing.T) {
	tests := []struct {
		name   string
		vec    string
		labels string
		is     func(error) bool
	}{
		{"extra vector row", "1\t2\n3\t4\n", "Word\tLanguage\na\tEnglish\n", export.IsFormatError},
		{"ragged vectors", "1\t2\n3\n", "Word\tLanguage\na\tEnglish\nb\tEnglish\n", export.IsFormatError},
		{"three label columns", "1\n", "Word\tLanguage\na\tEnglish\tx\n", export.IsFormatError},
		{"no header", "", "", export.IsFormatError},
		{"non numeric", "1\tx\n", "Word\tLanguage\na\tEnglish\n", export.IsValueError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(export.VectorPath(dir, "s"), []byte(tt.vec), 0o644))
			require.NoError(t, os.WriteFile(export.LabelPath(dir, "s"), []byte(tt.labels), 0o644))
			_, err := Load(dir, "s")
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected kind: %v", err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir(), "absent")
	require.Error(t, err)
	assert.True(t, export.IsIOError(err))
}
