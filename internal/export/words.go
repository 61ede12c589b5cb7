package export

import (
	"bufio"
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"xlingviz/internal/domain"
)

// maxLineBytes bounds a single line of a word-vector file.
const maxLineBytes = 16 << 20

// Words exports the word vectors of each file in paths, labelled with the
// language at the same index, to <stem>_vec.tsv and <stem>_label.tsv.
func Words(paths, languages []string, stem string, opts Options) (*Result, error) {
	if len(paths) != len(languages) {
		return nil, configErrorf("%d embedding files but %d language labels", len(paths), len(languages))
	}
	sources := make([]domain.EmbeddingSource, len(paths))
	for i := range paths {
		sources[i] = domain.EmbeddingSource{Path: paths[i], Language: languages[i]}
	}
	return WordSources(sources, stem, opts)
}

// WordSources is Words over already paired sources. Sources are read in order;
// each contributes at most opts.MaxPerSource records.
func WordSources(sources []domain.EmbeddingSource, stem string, opts Options) (*Result, error) {
	if err := checkStem(stem); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, configErrorf("no embedding files given")
	}
	for _, src := range sources {
		if src.Path == "" {
			return nil, configErrorf("embedding file path is empty")
		}
		if err := checkLabel("language", src.Language); err != nil {
			return nil, err
		}
	}
	opts = opts.withDefaults()

	pw, err := createPair(opts.OutputDir, stem, "Word\tLanguage")
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for _, src := range sources {
		stat, err := exportWordSource(pw, src, opts.MaxPerSource, res.Dimension)
		if err != nil {
			pw.abort()
			return nil, err
		}
		if res.Dimension == 0 {
			res.Dimension = stat.Dimension
		}
		res.Sources = append(res.Sources, stat)
		opts.Logger.Info("exported word embeddings",
			zap.String("path", src.Path),
			zap.String("language", src.Language),
			zap.Int("declared", stat.Declared),
			zap.Int("dimension", stat.Dimension),
			zap.Int("rows", stat.Rows))
	}
	res.Rows = pw.rows
	if res.VectorPath, res.LabelPath, err = pw.commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// exportWordSource streams one word-vector file into pw. wantDim is the
// dimension of earlier sources, or 0 for the first one.
func exportWordSource(pw *pairWriter, src domain.EmbeddingSource, limit, wantDim int) (SourceStat, error) {
	stat := SourceStat{Name: src.Path, Language: src.Language}
	f, err := os.Open(src.Path)
	if err != nil {
		return stat, ioError(src.Path, "opening embedding file", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	if !sc.Scan() {
		if err := scanError(sc.Err(), src.Path, 1); err != nil {
			return stat, err
		}
		return stat, formatErrorf(src.Path, 1, "missing header line")
	}
	declared, dim, err := parseHeader(sc.Text())
	if err != nil {
		return stat, formatErrorf(src.Path, 1, "%v", err)
	}
	if wantDim > 0 && dim != wantDim {
		return stat, formatErrorf(src.Path, 1, "declared dimension %d differs from %d in earlier files", dim, wantDim)
	}
	stat.Declared, stat.Dimension = declared, dim

	line := 1
	for sc.Scan() {
		line++
		if line-1 > declared {
			return stat, formatErrorf(src.Path, line, "more records than the %d declared in the header", declared)
		}
		rec, err := parseWordLine(sc.Text(), dim, src.Path, line)
		if err != nil {
			return stat, err
		}
		if err := pw.write(domain.LabelRecord{Primary: rec.Token, Secondary: src.Language}, rec.Fields); err != nil {
			return stat, err
		}
		stat.Rows++
		if limit > 0 && stat.Rows >= limit {
			return stat, nil
		}
	}
	if err := scanError(sc.Err(), src.Path, line+1); err != nil {
		return stat, err
	}
	if stat.Rows != declared {
		return stat, formatErrorf(src.Path, line, "header declares %d records but the file holds %d", declared, stat.Rows)
	}
	return stat, nil
}

func scanError(err error, path string, line int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return formatErrorf(path, line, "line longer than %d bytes", maxLineBytes)
	default:
		return ioError(path, "reading embedding file", err)
	}
}

// parseHeader reads the "<count> <dimension>" first line.
func parseHeader(text string) (count, dim int, err error) {
	text = strings.TrimPrefix(cleanLine(text), "\ufeff")
	fields := splitFields(text)
	if len(fields) != 2 {
		return 0, 0, errors.New("header must be \"<count> <dimension>\", got " + strconv.Quote(text))
	}
	count, err = strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0, 0, errors.New("header record count " + strconv.Quote(fields[0]) + " is not a non-negative integer")
	}
	dim, err = strconv.Atoi(fields[1])
	if err != nil || dim <= 0 {
		return 0, 0, errors.New("header dimension " + strconv.Quote(fields[1]) + " is not a positive integer")
	}
	return count, dim, nil
}

// parseWordLine splits "<token> <v1> ... <vD>". Fields past D are ignored.
// Components are validated as finite numbers but kept as written.
func parseWordLine(text string, dim int, path string, line int) (domain.EmbeddingRecord, error) {
	fields := splitFields(cleanLine(text))
	if len(fields) < dim+1 {
		return domain.EmbeddingRecord{}, formatErrorf(path, line, "expected a token and %d components, got %d fields", dim, len(fields))
	}
	comps := fields[1 : dim+1]
	for i, c := range comps {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.EmbeddingRecord{}, valueErrorf(path, line, "component %d of %q is not a finite number: %q", i+1, fields[0], c)
		}
	}
	return domain.EmbeddingRecord{Token: fields[0], Fields: comps}, nil
}

// cleanLine drops invalid UTF-8 sequences.
func cleanLine(s string) string { return strings.ToValidUTF8(s, "") }

// splitFields splits on ASCII whitespace only. Tokens may contain other Unicode spaces.
func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
	})
}
