package export

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"xlingviz/internal/domain"
)

// Conventional corpus names for DocumentPair.
const (
	LanguageEnglish = "English"
	LanguageChinese = "Chinese"
)

// DocumentPair exports an English and a Chinese corpus, English rows first.
func DocumentPair(xe [][]float64, ye []int, xc [][]float64, yc []int, stem string, opts Options) (*Result, error) {
	return Documents([]domain.DocumentGroup{
		{Language: LanguageEnglish, Vectors: xe, Labels: ye},
		{Language: LanguageChinese, Vectors: xc, Labels: yc},
	}, stem, opts)
}

// Documents exports document vectors with their topic labels to
// <stem>_vec.tsv and <stem>_label.tsv. Groups are written in order, rows
// within a group in input order. Components are written with 4 decimals.
//
// All input is validated before any file is created.
func Documents(groups []domain.DocumentGroup, stem string, opts Options) (*Result, error) {
	if err := checkStem(stem); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, configErrorf("no document groups given")
	}
	opts = opts.withDefaults()
	for _, name := range opts.Topics {
		if err := checkLabel("topic", name); err != nil {
			return nil, err
		}
	}
	dim, err := validateGroups(groups, opts.Topics)
	if err != nil {
		return nil, err
	}

	pw, err := createPair(opts.OutputDir, stem, "Topic\tLanguage")
	if err != nil {
		return nil, err
	}
	res := &Result{Dimension: dim}
	fields := make([]string, dim)
	for _, g := range groups {
		for i, vec := range g.Vectors {
			topic, _ := opts.Topics.Name(g.Labels[i])
			for j, v := range vec {
				fields[j] = FormatComponent(v)
			}
			if err := pw.write(domain.LabelRecord{Primary: topic, Secondary: g.Language}, fields); err != nil {
				pw.abort()
				return nil, err
			}
		}
		res.Sources = append(res.Sources, SourceStat{
			Name:      g.Language,
			Language:  g.Language,
			Declared:  -1,
			Dimension: dim,
			Rows:      len(g.Vectors),
		})
		opts.Logger.Info("exported document embeddings",
			zap.String("language", g.Language),
			zap.Int("rows", len(g.Vectors)),
			zap.Int("dimension", dim))
	}
	res.Rows = pw.rows
	if res.VectorPath, res.LabelPath, err = pw.commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// FormatComponent renders a document vector component as fixed-point with 4 decimals.
func FormatComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// validateGroups checks shapes, label codes and numeric payloads, and
// returns the common row width (0 when every group is empty).
func validateGroups(groups []domain.DocumentGroup, topics domain.TopicLabelSet) (int, error) {
	dim := 0
	for _, g := range groups {
		if err := checkLabel("language", g.Language); err != nil {
			return 0, err
		}
		if len(g.Vectors) != len(g.Labels) {
			return 0, configErrorf("group %q has %d vectors but %d labels", g.Language, len(g.Vectors), len(g.Labels))
		}
		for i, vec := range g.Vectors {
			if len(vec) == 0 {
				return 0, configErrorf("group %q row %d is an empty vector", g.Language, i)
			}
			if dim == 0 {
				dim = len(vec)
			} else if len(vec) != dim {
				return 0, configErrorf("group %q row %d has %d components, expected %d", g.Language, i, len(vec), dim)
			}
			if _, ok := topics.Name(g.Labels[i]); !ok {
				return 0, formatErrorf("", 0, "group %q row %d: topic code %d outside %s", g.Language, i, g.Labels[i], topics)
			}
			for j, v := range vec {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return 0, valueErrorf("", 0, "group %q row %d column %d: non-finite component %v", g.Language, i, j, v)
				}
			}
		}
	}
	return dim, nil
}
