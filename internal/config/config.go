package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Language   string        `yaml:"language"`
	DataDir    string        `yaml:"data_dir"`
	Submission string        `yaml:"submission"`
	Splits     []SplitConfig `yaml:"splits"`
	Columns    ColumnsConfig `yaml:"columns"`
	BLEU       BLEUConfig    `yaml:"bleu"`
	Report     ReportConfig  `yaml:"report"`
	LogLevel   string        `yaml:"log_level"`
}

// SplitConfig names one ground-truth file scored against the submission.
type SplitConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ColumnsConfig holds the CSV column names.
type ColumnsConfig struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// BLEUConfig holds scoring settings.
type BLEUConfig struct {
	MaxOrder int `yaml:"max_order"`
}

// ReportConfig selects extra output.
type ReportConfig struct {
	WER bool `yaml:"wer"` // log corpus word error rate per split
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gostt-score")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values: a German
// submission.csv scored against public.csv and private.csv in the working
// directory.
func Default() *Config {
	return &Config{
		Language:   "de",
		DataDir:    ".",
		Submission: "submission.csv",
		Splits: []SplitConfig{
			{Name: "public", Path: "public.csv"},
			{Name: "private", Path: "private.csv"},
		},
		Columns: ColumnsConfig{
			ID:   "path",
			Text: "sentence",
		},
		BLEU: BLEUConfig{
			MaxOrder: 4,
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in data_dir is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.DataDir = expandTilde(cfg.DataDir)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("language %q is not a valid BCP 47 tag: %w", c.Language, err)
	}

	if c.Submission == "" {
		return fmt.Errorf("submission must not be empty")
	}

	if len(c.Splits) == 0 {
		return fmt.Errorf("splits must not be empty")
	}
	seen := make(map[string]bool, len(c.Splits))
	for i, s := range c.Splits {
		if s.Name == "" {
			return fmt.Errorf("splits[%d].name must not be empty", i)
		}
		if s.Path == "" {
			return fmt.Errorf("splits[%d].path must not be empty", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("splits[%d].name %q is used twice", i, s.Name)
		}
		seen[s.Name] = true
	}

	if c.Columns.ID == "" || c.Columns.Text == "" {
		return fmt.Errorf("columns.id and columns.text must not be empty")
	}
	if c.Columns.ID == c.Columns.Text {
		return fmt.Errorf("columns.id and columns.text must differ, both are %q", c.Columns.ID)
	}

	if c.BLEU.MaxOrder < 1 {
		return fmt.Errorf("bleu.max_order must be > 0, got %d", c.BLEU.MaxOrder)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ResolvePath returns p unchanged if it is absolute, otherwise joined onto
// DataDir.
func (c *Config) ResolvePath(p string) string {
	p = expandTilde(p)
	if filepath.IsAbs(p) || c.DataDir == "" {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// ParseSplit parses a "name=path" flag value. A bare path takes its file
// name without extension as the split name.
func ParseSplit(v string) (SplitConfig, error) {
	name, path, ok := strings.Cut(v, "=")
	if !ok {
		path = v
		name = strings.TrimSuffix(filepath.Base(v), filepath.Ext(v))
	}
	name, path = strings.TrimSpace(name), strings.TrimSpace(path)
	if name == "" || path == "" {
		return SplitConfig{}, fmt.Errorf("split %q must be name=path", v)
	}
	return SplitConfig{Name: name, Path: path}, nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
