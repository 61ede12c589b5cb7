// Package projector reads back the vector/label table pairs written by the
// exporters and checks that they line up row for row.
package projector

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"xlingviz/internal/domain"
	"xlingviz/internal/export"
)

// Dataset is a loaded table pair.
type Dataset struct {
	Header  [2]string
	Labels  []domain.LabelRecord
	Vectors [][]float64
}

// Summary describes a dataset at a glance.
type Summary struct {
	Rows        int
	Dimension   int
	Header      [2]string
	BySecondary []LabelCount // in first-seen order
}

// LabelCount is the number of rows carrying one secondary label.
type LabelCount struct {
	Label string
	Rows  int
}

// Load reads <stem>_vec.tsv and <stem>_label.tsv from dir.
func Load(dir, stem string) (*Dataset, error) {
	labelPath := export.LabelPath(dir, stem)
	vecPath := export.VectorPath(dir, stem)

	ds := &Dataset{}
	err := scanLines(labelPath, func(line int, text string) error {
		cols := strings.Split(text, "\t")
		if len(cols) != 2 {
			return formatErr(labelPath, line, "expected 2 tab-separated columns, got %d", len(cols))
		}
		if line == 1 {
			ds.Header = [2]string{cols[0], cols[1]}
			return nil
		}
		ds.Labels = append(ds.Labels, domain.LabelRecord{Primary: cols[0], Secondary: cols[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ds.Header[0] == "" {
		return nil, formatErr(labelPath, 1, "missing header row")
	}

	dim := 0
	err = scanLines(vecPath, func(line int, text string) error {
		cols := strings.Split(text, "\t")
		if dim == 0 {
			dim = len(cols)
		} else if len(cols) != dim {
			return formatErr(vecPath, line, "row has %d components, expected %d", len(cols), dim)
		}
		vec := make([]float64, len(cols))
		for i, c := range cols {
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return &export.Error{Kind: export.ErrValue, Path: vecPath, Line: line, Msg: fmt.Sprintf("component %d is not a number: %q", i+1, c)}
			}
			vec[i] = v
		}
		ds.Vectors = append(ds.Vectors, vec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ds.Vectors) != len(ds.Labels) {
		return nil, formatErr(vecPath, 0, "%d vector rows but %d label rows in %s", len(ds.Vectors), len(ds.Labels), labelPath)
	}
	return ds, nil
}

// Dimension returns the vector width, 0 for an empty dataset.
func (d *Dataset) Dimension() int {
	if len(d.Vectors) == 0 {
		return 0
	}
	return len(d.Vectors[0])
}

// Summary counts rows per secondary label.
func (d *Dataset) Summary() Summary {
	s := Summary{Rows: len(d.Labels), Dimension: d.Dimension(), Header: d.Header}
	index := map[string]int{}
	for _, l := range d.Labels {
		i, ok := index[l.Secondary]
		if !ok {
			i = len(s.BySecondary)
			index[l.Secondary] = i
			s.BySecondary = append(s.BySecondary, LabelCount{Label: l.Secondary})
		}
		s.BySecondary[i].Rows++
	}
	return s
}

// PrimaryCounts counts rows per primary label, most frequent first.
func (d *Dataset) PrimaryCounts() []LabelCount {
	counts := map[string]int{}
	for _, l := range d.Labels {
		counts[l.Primary]++
	}
	out := make([]LabelCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, LabelCount{Label: k, Rows: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rows != out[j].Rows {
			return out[i].Rows > out[j].Rows
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func scanLines(path string, fn func(line int, text string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &export.Error{Kind: export.ErrIO, Path: path, Msg: "opening table", Err: err}
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		if err := fn(line, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return &export.Error{Kind: export.ErrIO, Path: path, Line: line + 1, Msg: "reading table", Err: err}
	}
	return nil
}

func formatErr(path string, line int, format string, args ...any) error {
	return &export.Error{Kind: export.ErrFormat, Path: path, Line: line, Msg: fmt.Sprintf(format, args...)}
}
