package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"xlingviz/internal/domain"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "XLINGVIZ_CONFIG"

// OutputConfig sets where exports and charts are written.
type OutputConfig struct {
	ExportDir string `yaml:"export_dir"`
	ChartDir  string `yaml:"chart_dir"`
}

// WordsConfig configures the word embedding export.
type WordsConfig struct {
	Stem         string                   `yaml:"stem"`
	MaxPerSource int                      `yaml:"max_per_source"`
	Sources      []domain.EmbeddingSource `yaml:"sources,omitempty"`
}

// DocumentsConfig configures the document embedding export.
type DocumentsConfig struct {
	Stem    string   `yaml:"stem"`
	Dataset string   `yaml:"dataset,omitempty"`
	Topics  []string `yaml:"topics,omitempty"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Output    OutputConfig    `yaml:"output"`
	Words     WordsConfig     `yaml:"words"`
	Documents DocumentsConfig `yaml:"documents"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TopicSet returns the configured topic names, or the default set.
func (c *AppConfig) TopicSet() domain.TopicLabelSet {
	if len(c.Documents.Topics) == 0 {
		return domain.DefaultTopics
	}
	return domain.TopicLabelSet(c.Documents.Topics)
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries $XLINGVIZ_CONFIG, then ./xlingviz.yaml, then
// ~/.config/xlingviz/config.yaml. If none exists it returns defaults without
// writing anything.
func LoadDefault() (*AppConfig, string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	cwdPath := "xlingviz.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return defaultConfig(), "", nil
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "xlingviz", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Output.ExportDir == "" {
		cfg.Output.ExportDir = "mid"
	}
	if cfg.Output.ChartDir == "" {
		cfg.Output.ChartDir = "output"
	}
	if cfg.Words.Stem == "" {
		cfg.Words.Stem = "Embed_EN_ZH"
	}
	if cfg.Documents.Stem == "" {
		cfg.Documents.Stem = "Doc_EN_ZH"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
