package export

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"xlingviz/internal/domain"
)

const (
	vectorSuffix = "_vec.tsv"
	labelSuffix  = "_label.tsv"
)

// VectorPath returns the vector table path for stem under dir.
func VectorPath(dir, stem string) string { return filepath.Join(dir, stem+vectorSuffix) }

// LabelPath returns the label table path for stem under dir.
func LabelPath(dir, stem string) string { return filepath.Join(dir, stem+labelSuffix) }

// pairWriter writes the vector and label tables to temporary files and
// renames them into place on commit. Row i of one file always matches row i
// of the other (after the label header).
type pairWriter struct {
	dir    string
	stem   string
	vecF   *os.File
	labelF *os.File
	vec    *bufio.Writer
	label  *bufio.Writer
	rows   int
	closed bool
}

func createPair(dir, stem, header string) (*pairWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioError(dir, "creating output directory", err)
	}
	vecF, err := os.CreateTemp(dir, "."+stem+"_vec-*.tmp")
	if err != nil {
		return nil, ioError(VectorPath(dir, stem), "creating vector table", err)
	}
	labelF, err := os.CreateTemp(dir, "."+stem+"_label-*.tmp")
	if err != nil {
		_ = vecF.Close()
		_ = os.Remove(vecF.Name())
		return nil, ioError(LabelPath(dir, stem), "creating label table", err)
	}
	p := &pairWriter{
		dir:    dir,
		stem:   stem,
		vecF:   vecF,
		labelF: labelF,
		vec:    bufio.NewWriterSize(vecF, 1<<16),
		label:  bufio.NewWriterSize(labelF, 1<<16),
	}
	if _, err := p.label.WriteString(header + "\n"); err != nil {
		p.abort()
		return nil, ioError(LabelPath(dir, stem), "writing label header", err)
	}
	return p, nil
}

func (p *pairWriter) write(label domain.LabelRecord, fields []string) error {
	if _, err := p.label.WriteString(label.Primary + "\t" + label.Secondary + "\n"); err != nil {
		return ioError(LabelPath(p.dir, p.stem), "writing label row", err)
	}
	if _, err := p.vec.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
		return ioError(VectorPath(p.dir, p.stem), "writing vector row", err)
	}
	p.rows++
	return nil
}

func (p *pairWriter) close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	errs := []error{p.vec.Flush(), p.label.Flush(), p.vecF.Close(), p.labelF.Close()}
	return errors.Join(errs...)
}

// commit flushes both tables and renames them to their final names.
// On failure no temporary file is left behind.
func (p *pairWriter) commit() (vecPath, labelPath string, err error) {
	vecPath, labelPath = VectorPath(p.dir, p.stem), LabelPath(p.dir, p.stem)
	if err := p.close(); err != nil {
		p.abort()
		return "", "", ioError(vecPath, "flushing output", err)
	}
	for _, f := range []*os.File{p.vecF, p.labelF} {
		if err := os.Chmod(f.Name(), 0o644); err != nil {
			p.abort()
			return "", "", ioError(f.Name(), "setting output permissions", err)
		}
	}
	if err := os.Rename(p.vecF.Name(), vecPath); err != nil {
		p.abort()
		return "", "", ioError(vecPath, "renaming vector table into place", err)
	}
	if err := os.Rename(p.labelF.Name(), labelPath); err != nil {
		// A vector table without its matching labels is worse than none.
		_ = os.Remove(vecPath)
		p.abort()
		return "", "", ioError(labelPath, "renaming label table into place", err)
	}
	return vecPath, labelPath, nil
}

// abort closes and removes both temporary files. Safe to call more than once.
func (p *pairWriter) abort() {
	_ = p.close()
	_ = os.Remove(p.vecF.Name())
	_ = os.Remove(p.labelF.Name())
}
