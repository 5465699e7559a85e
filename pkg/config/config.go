/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/ypbank/pkg/codec"
)

// Config represents the ypbank configuration
type Config struct {
	Binary  Binary  `yaml:"binary"`
	Report  Report  `yaml:"report"`
	Archive Archive `yaml:"archive"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Binary contains binary codec limits
type Binary struct {
	MaxRecordSize uint32 `yaml:"max_record_size"`
}

// Report contains comparison report settings
type Report struct {
	Format string `yaml:"format"` // table or json
}

// Archive contains record archive settings
type Archive struct {
	DataDir string `yaml:"data_dir"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Metrics contains metrics export configuration
type Metrics struct {
	Textfile string `yaml:"textfile"` // Prometheus textfile path, empty disables export
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Binary: Binary{
			MaxRecordSize: codec.DefaultMaxRecordSize,
		},
		Report: Report{
			Format: "table",
		},
		Archive: Archive{
			DataDir: "./data",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	if c.Binary.MaxRecordSize < codec.MinBodySize {
		return fmt.Errorf("binary.max_record_size must be at least %d", codec.MinBodySize)
	}
	switch c.Report.Format {
	case "table", "json":
	default:
		return fmt.Errorf("unknown report.format %q", c.Report.Format)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Keys absent from the
// file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./ypbank.yaml"
	}

	// ~/.config/ypbank/config.yaml
	configDir := filepath.Join(homeDir, ".config", "ypbank")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
