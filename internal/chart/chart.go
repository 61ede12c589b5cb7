// Package chart renders the experiment's result charts: class-count bars,
// confusion-matrix grids and training accuracy/loss curves.
//
// Every chart renders to the terminal with lipgloss and to a self-contained
// gnuplot script (data inlined as $data blocks) that produces a PNG.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// DefaultDir is where gnuplot scripts are written when no directory is given.
const DefaultDir = "output"

// Chart is implemented by every chart type in this package.
type Chart interface {
	Title() string
	Render() string
	// Gnuplot returns a script that renders the chart to output, or to
	// <title>.png when output is empty.
	Gnuplot(output string) string
}

// Palette starts with the darkblue/orangered pair with lighter shades
// for additional series of the same language.
var palette = []struct{ term, rgb string }{
	{"19", "#00008b"},
	{"202", "#ff4500"},
	{"27", "#3f3fb0"},
	{"208", "#ff7d4d"},
	{"33", "#8c8cd0"},
	{"214", "#ffb399"},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// FileName turns a chart title into a file name stem.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "chart"
	}
	return b.String()
}

// WriteGnuplot writes c's gnuplot script to dir/<title>.plt and returns its
// path. The script writes dir/<title>.png, resolved against the directory
// gnuplot is started from, so run it from the same directory as this call.
func WriteGnuplot(dir string, c Chart) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating chart directory: %w", err)
	}
	path := filepath.Join(dir, FileName(c.Title())+".plt")
	png := filepath.ToSlash(filepath.Join(dir, FileName(c.Title())+".png"))
	if err := os.WriteFile(path, []byte(c.Gnuplot(png)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// gnuplotHeader starts a script that renders to output (default <title>.png).
func gnuplotHeader(sb *strings.Builder, title, output string, width, height int) {
	if output == "" {
		output = FileName(title) + ".png"
	}
	sb.WriteString("#!/usr/bin/gnuplot\n")
	sb.WriteString("reset\n")
	fmt.Fprintf(sb, "set terminal pngcairo size %d,%d enhanced font 'Arial,11'\n", width, height)
	fmt.Fprintf(sb, "set output %s\n\n", quote(output))
}

// quote renders s as a single-quoted gnuplot string.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// dquote renders s as a double-quoted field inside a data block.
func dquote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i%len(palette)].term))
}

func seriesRGB(i int) string { return palette[i%len(palette)].rgb }
