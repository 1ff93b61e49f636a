package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name in the project directory.
const FileName = "spendsense.yaml"

// Config represents the top-level spendsense.yaml configuration.
type Config struct {
	User         UserConfig         `yaml:"user"`
	Database     DatabaseConfig     `yaml:"database"`
	Defaults     DefaultsConfig     `yaml:"defaults"`
	Import       ImportConfig       `yaml:"import"`
	Keywords     KeywordsConfig     `yaml:"keywords,omitempty"`
	Dictionaries DictionariesConfig `yaml:"dictionaries,omitempty"`
}

// UserConfig identifies whose data this project holds.
type UserConfig struct {
	ID string `yaml:"id"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig fills fields missing from a CSV export.
type DefaultsConfig struct {
	Currency string `yaml:"currency"`
	Account  string `yaml:"account"`
}

// ImportConfig controls the import directory and audit log.
type ImportConfig struct {
	Directory string `yaml:"directory"`
	LogFile   string `yaml:"log_file"`
}

// KeywordsConfig appends user keywords to the baseline sign-reconciliation
// lists.
type KeywordsConfig struct {
	Income  []string `yaml:"income,omitempty"`
	Expense []string `yaml:"expense,omitempty"`
}

// DictionaryEntry is one user-supplied substring-to-category pair.
type DictionaryEntry struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// DictionariesConfig appends user entries after the baseline dictionaries.
type DictionariesConfig struct {
	Merchants []DictionaryEntry `yaml:"merchants,omitempty"`
	Keywords  []DictionaryEntry `yaml:"keywords,omitempty"`
}

// Load reads a spendsense.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(userID string) *Config {
	return &Config{
		User:     UserConfig{ID: userID},
		Database: DatabaseConfig{Path: "spendsense.db"},
		Defaults: DefaultsConfig{
			Currency: "USD",
			Account:  "Default Account",
		},
		Import: ImportConfig{
			Directory: "import",
			LogFile:   "logs/import-log.csv",
		},
	}
}
