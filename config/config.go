// Package config provides configuration loading and management for the
// SemDom coverage tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration
type Config struct {
	Codes  CodesConfig  `yaml:"codes"`
	Report ReportConfig `yaml:"report"`
	Output OutputConfig `yaml:"output"`
}

// CodesConfig bounds the LN code vocabulary
type CodesConfig struct {
	// MinBase is the lowest LN domain number treated as in-range
	MinBase int `yaml:"min_base"`
	// MaxBase is the highest LN domain number treated as in-range
	MaxBase int `yaml:"max_base"`
	// Language selects the writing system for localized XML fields
	Language string `yaml:"language"`
}

// ReportConfig configures console report rendering
type ReportConfig struct {
	// Width is the report width in columns
	Width int `yaml:"width"`
}

// OutputConfig configures CSV output
type OutputConfig struct {
	// QuoteAll forces quotes around every CSV field (historical format).
	// A pointer so an explicit quote_all: false in a config file is
	// distinguishable from the field being unset.
	QuoteAll *bool `yaml:"quote_all"`
}

// QuoteAllEnabled reports the effective quoting mode. Unset means the
// historical quote-all format.
func (o OutputConfig) QuoteAllEnabled() bool {
	return o.QuoteAll == nil || *o.QuoteAll
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Codes: CodesConfig{
			MinBase:  1,
			MaxBase:  93,
			Language: "en",
		},
		Report: ReportConfig{
			Width: 70,
		},
		Output: OutputConfig{
			QuoteAll: boolPtr(true),
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Codes.MinBase < 1 {
		return fmt.Errorf("codes.min_base must be at least 1, got %d", c.Codes.MinBase)
	}
	if c.Codes.MaxBase < c.Codes.MinBase {
		return fmt.Errorf("codes.max_base (%d) must not be below codes.min_base (%d)",
			c.Codes.MaxBase, c.Codes.MinBase)
	}
	if c.Codes.Language == "" {
		return fmt.Errorf("codes.language is required")
	}
	if c.Report.Width < 40 {
		return fmt.Errorf("report.width must be at least 40, got %d", c.Report.Width)
	}
	return nil
}

// Merge overlays non-zero values from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Codes.MinBase != 0 {
		c.Codes.MinBase = other.Codes.MinBase
	}
	if other.Codes.MaxBase != 0 {
		c.Codes.MaxBase = other.Codes.MaxBase
	}
	if other.Codes.Language != "" {
		c.Codes.Language = other.Codes.Language
	}
	if other.Report.Width != 0 {
		c.Report.Width = other.Report.Width
	}
	if other.Output.QuoteAll != nil {
		c.Output.QuoteAll = other.Output.QuoteAll
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// LoadFromFile reads a Config from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToFile writes the Config to a YAML file, creating parent directories
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
