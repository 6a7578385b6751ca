package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsonsieve
type Config struct {
	Output OutputConfig `yaml:"output"`
	Search SearchConfig `yaml:"search"`
	Repair bool         `yaml:"repair"`
}

// OutputConfig controls how extracted values are printed
type OutputConfig struct {
	Pretty  bool   `yaml:"pretty"`
	Indent  string `yaml:"indent"`
	KeyCase string `yaml:"key_case"`
}

// SearchConfig holds key-search defaults
type SearchConfig struct {
	Key string `yaml:"key"`
}

// KeyCases lists the accepted values for output.key_case. The empty string
// leaves keys untouched.
var KeyCases = []string{"", "snake", "camel", "lower_camel", "kebab"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty:  false,
			Indent:  "  ",
			KeyCase: "",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configured values against their accepted sets
func (c *Config) Validate() error {
	for _, valid := range KeyCases {
		if c.Output.KeyCase == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid key_case '%s': must be one of snake, camel, lower_camel, kebab", c.Output.KeyCase)
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonsieve.yml", ".jsonsieve.yaml", "jsonsieve.yml", "jsonsieve.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
