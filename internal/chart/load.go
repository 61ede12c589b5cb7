package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xlingviz/internal/domain"
)

// BarsFile is the YAML shape of a bar chart data file.
type BarsFile struct {
	Title      string               `yaml:"title"`
	Categories []string             `yaml:"categories,omitempty"`
	Series     []domain.CountSeries `yaml:"series"`
}

// ConfusionFile is the YAML shape of a confusion grid data file.
type ConfusionFile struct {
	Title    string                   `yaml:"title"`
	Classes  []string                 `yaml:"classes,omitempty"`
	Matrices []domain.ConfusionMatrix `yaml:"matrices"`
}

// HistoryFile is the YAML shape of a training history data file.
type HistoryFile struct {
	Title     string                   `yaml:"title"`
	Histories []domain.TrainingHistory `yaml:"histories"`
}

// LoadBars reads a bar chart. Categories default to the topic names.
func LoadBars(path string) (*BarChart, error) {
	var f BarsFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	if len(f.Categories) == 0 {
		f.Categories = domain.DefaultTopics
	}
	c, err := NewBarChart(f.Title, f.Categories, f.Series)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadConfusion reads a confusion grid.
func LoadConfusion(path string) (*ConfusionGrid, error) {
	var f ConfusionFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	g, err := NewConfusionGrid(f.Title, f.Classes, f.Matrices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadHistory reads a training history chart.
func LoadHistory(path string) (*HistoryChart, error) {
	var f HistoryFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	c, err := NewHistoryChart(f.Title, f.Histories)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
