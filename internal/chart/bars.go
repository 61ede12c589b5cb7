package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xlingviz/internal/domain"
)

const barWidth = 40

// BarChart is a grouped bar chart of per-category counts, one bar per series.
type BarChart struct {
	title      string
	categories []string
	series     []domain.CountSeries
}

// NewBarChart validates that every series has one non-negative count per category.
func NewBarChart(title string, categories []string, series []domain.CountSeries) (*BarChart, error) {
	if len(categories) == 0 {
		return nil, errors.New("bar chart needs at least one category")
	}
	if len(series) == 0 {
		return nil, errors.New("bar chart needs at least one series")
	}
	for _, s := range series {
		if len(s.Counts) != len(categories) {
			return nil, fmt.Errorf("series %q has %d counts for %d categories", s.Label, len(s.Counts), len(categories))
		}
		for i, c := range s.Counts {
			if c < 0 {
				return nil, fmt.Errorf("series %q has a negative count for %s", s.Label, categories[i])
			}
		}
	}
	return &BarChart{title: title, categories: categories, series: series}, nil
}

func (c *BarChart) Title() string { return c.title }

func (c *BarChart) max() int {
	m := 0
	for _, s := range c.series {
		for _, v := range s.Counts {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Render draws horizontal bars grouped by category.
func (c *BarChart) Render() string {
	maxV := c.max()
	catW, labelW := 0, 0
	for _, cat := range c.categories {
		catW = max(catW, lipgloss.Width(cat))
	}
	for _, s := range c.series {
		labelW = max(labelW, lipgloss.Width(s.Label))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.title) + "\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("scale: %d = %d cells", maxV, barWidth)) + "\n")
	for i, cat := range c.categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, s := range c.series {
			name := ""
			if j == 0 {
				name = cat
			}
			n := 0
			if maxV > 0 {
				n = int(math.Round(float64(s.Counts[i]) / float64(maxV) * barWidth))
			}
			bar := seriesStyle(j).Render(strings.Repeat("█", n))
			fmt.Fprintf(&sb, "%-*s %-*s │%s %d\n", catW, name, labelW, s.Label, bar, s.Counts[i])
		}
	}
	return sb.String()
}

// Gnuplot emits a clustered histogram script.
func (c *BarChart) Gnuplot(output string) string {
	var sb strings.Builder
	gnuplotHeader(&sb, c.title, output, 1000, 700)
	fmt.Fprintf(&sb, "set title %s\n", quote(c.title))
	sb.WriteString("set xlabel 'Topics'\n")
	sb.WriteString("set ylabel 'Count'\n")
	sb.WriteString("set style data histograms\n")
	sb.WriteString("set style histogram clustered gap 1\n")
	sb.WriteString("set style fill solid 0.8 border -1\n")
	sb.WriteString("set key top right\n")
	sb.WriteString("set grid ytics\n\n")

	sb.WriteString("$data << EOD\n")
	sb.WriteString("Category")
	for _, s := range c.series {
		sb.WriteString(" " + dquote(s.Label))
	}
	sb.WriteString("\n")
	for i, cat := range c.categories {
		sb.WriteString(dquote(cat))
		for _, s := range c.series {
			fmt.Fprintf(&sb, " %d", s.Counts[i])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("EOD\n\n")

	parts := make([]string, len(c.series))
	for j := range c.series {
		using := fmt.Sprintf("%d", j+2)
		if j == 0 {
			using += ":xtic(1)"
		}
		parts[j] = fmt.Sprintf("$data using %s title columnheader(%d) lc rgb %s", using, j+2, quote(seriesRGB(j)))
	}
	sb.WriteString("plot " + strings.Join(parts, ", \\\n     ") + "\n")
	return sb.String()
}
