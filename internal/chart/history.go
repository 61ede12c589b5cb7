package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"xlingviz/internal/domain"
)

// HistoryChart plots accuracy (solid) and loss (dashed) per training run over epochs.
type HistoryChart struct {
	title     string
	histories []domain.TrainingHistory
	epochs    int
}

// NewHistoryChart requires every history to cover the same, non-zero number of epochs.
func NewHistoryChart(title string, histories []domain.TrainingHistory) (*HistoryChart, error) {
	if len(histories) == 0 {
		return nil, errors.New("history chart needs at least one series")
	}
	epochs := len(histories[0].Accuracy)
	if epochs == 0 {
		return nil, fmt.Errorf("history %q has no epochs", histories[0].Label)
	}
	for _, h := range histories {
		if len(h.Accuracy) != epochs || len(h.Loss) != epochs {
			return nil, fmt.Errorf("history %q has %d accuracy and %d loss values, expected %d each",
				h.Label, len(h.Accuracy), len(h.Loss), epochs)
		}
		for _, v := range append(append([]float64{}, h.Accuracy...), h.Loss...) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("history %q has a non-finite value", h.Label)
			}
		}
	}
	return &HistoryChart{title: title, histories: histories, epochs: epochs}, nil
}

func (c *HistoryChart) Title() string { return c.title }

const sparkRunes = "▁▂▃▄▅▆▇█"

// sparkline scales values into block characters between lo and hi.
func sparkline(values []float64, lo, hi float64) string {
	runes := []rune(sparkRunes)
	var sb strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(len(runes)-1)))
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// Render prints one sparkline per series plus a per-epoch table.
func (c *HistoryChart) Render() string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, h := range c.histories {
		for _, v := range append(append([]float64{}, h.Accuracy...), h.Loss...) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	labelW := 0
	for _, h := range c.histories {
		labelW = max(labelW, len(h.Label)+len("_Accuracy"))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.title) + "\n")
	for i, h := range c.histories {
		style := seriesStyle(i)
		fmt.Fprintf(&sb, "%-*s %s\n", labelW, h.Label+"_Accuracy", style.Render(sparkline(h.Accuracy, lo, hi)))
		fmt.Fprintf(&sb, "%-*s %s\n", labelW, h.Label+"_Loss", style.Render(sparkline(h.Loss, lo, hi)))
	}
	sb.WriteString("\n")
	sb.WriteString("epoch")
	for _, h := range c.histories {
		fmt.Fprintf(&sb, "  %10s  %10s", h.Label+" acc", h.Label+" loss")
	}
	sb.WriteString("\n")
	for e := 0; e < c.epochs; e++ {
		fmt.Fprintf(&sb, "%5d", e+1)
		for _, h := range c.histories {
			fmt.Fprintf(&sb, "  %10.4f  %10.4f", h.Accuracy[e], h.Loss[e])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Gnuplot emits a line chart with the legend at the bottom right.
func (c *HistoryChart) Gnuplot(output string) string {
	var sb strings.Builder
	gnuplotHeader(&sb, c.title, output, 1000, 700)
	fmt.Fprintf(&sb, "set title %s\n", quote(c.title))
	sb.WriteString("set xlabel 'Training Steps'\n")
	sb.WriteString("set ylabel 'Accuracy/Loss'\n")
	sb.WriteString("set key bottom right\n")
	sb.WriteString("set grid\n\n")

	sb.WriteString("# epoch")
	for _, h := range c.histories {
		fmt.Fprintf(&sb, " %s_acc %s_loss", h.Label, h.Label)
	}
	sb.WriteString("\n$data << EOD\n")
	for e := 0; e < c.epochs; e++ {
		fmt.Fprintf(&sb, "%d", e+1)
		for _, h := range c.histories {
			fmt.Fprintf(&sb, " %g %g", h.Accuracy[e], h.Loss[e])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("EOD\n\n")

	var parts []string
	for i, h := range c.histories {
		acc, loss := 2+2*i, 3+2*i
		parts = append(parts,
			fmt.Sprintf("$data using 1:%d with lines lw 2 dt 1 lc rgb %s title %s", acc, quote(seriesRGB(i)), quote(h.Label+"_Accuracy")),
			fmt.Sprintf("$data using 1:%d with lines lw 2 dt 2 lc rgb %s title %s", loss, quote(seriesRGB(i)), quote(h.Label+"_Loss")))
	}
	sb.WriteString("plot " + strings.Join(parts, ", \\\n     ") + "\n")
	return sb.String()
}
