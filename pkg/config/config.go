/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/parser"
	"github.com/ssargent/gs1kit/pkg/tokenizer"
	"gopkg.in/yaml.v3"
)

// Config represents the gs1 configuration
type Config struct {
	Mode               parser.Mode `yaml:"mode"`
	MaxInputLength     int         `yaml:"max_input_length"`
	StandardAIs        bool        `yaml:"standard_ais"`
	SeparatorHeuristic bool        `yaml:"separator_heuristic"`
	AIs                []ai.Spec   `yaml:"ais,omitempty"`
	Logging            Logging     `yaml:"logging"`
	Output             Output      `yaml:"output"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Output contains rendering configuration for the CLI
type Output struct {
	Format string `yaml:"format"`
}

var (
	logFormats    = map[string]bool{"text": true, "json": true}
	outputFormats = map[string]bool{"json": true, "yaml": true, "table": true}
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Mode:               parser.Lenient,
		MaxInputLength:     tokenizer.DefaultMaxInputLength,
		StandardAIs:        true,
		SeparatorHeuristic: false,
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Output: Output{
			Format: "table",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
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

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration in the given mode to configPath
func BootstrapConfig(configPath string, mode parser.Mode) (*Config, error) {
	config := DefaultConfig()
	config.Mode = mode

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./gs1.yaml"
	}

	// For Linux/macOS, use ~/.config/gs1/config.yaml
	configDir := filepath.Join(homeDir, ".config", "gs1")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// Validate checks the configuration for values the parser or CLI would reject
func (c *Config) Validate() error {
	if c.MaxInputLength < 0 {
		return fmt.Errorf("max_input_length must not be negative, got %d", c.MaxInputLength)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	if !logFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format %q: want text or json", c.Logging.Format)
	}
	if !outputFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format %q: want json, yaml or table", c.Output.Format)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry builds the AI table: the standard table unless standard_ais is
// off, with the ais entries added or overriding.
func (c *Config) Registry() (*ai.Registry, error) {
	builder := ai.NewBuilder()
	if !c.StandardAIs {
		builder.WithoutDefaults()
	}

	reg, err := builder.Register(c.AIs...).Build()
	if err != nil {
		return nil, fmt.Errorf("invalid AI table: %w", err)
	}
	return reg, nil
}

// ParserConfig translates the configuration into parser settings. Logger and
// metrics are left for the caller to inject.
func (c *Config) ParserConfig() (parser.Config, error) {
	reg, err := c.Registry()
	if err != nil {
		return parser.Config{}, err
	}

	return parser.Config{
		Mode:               c.Mode,
		Registry:           reg,
		MaxInputLength:     c.MaxInputLength,
		SeparatorHeuristic: c.SeparatorHeuristic,
	}, nil
}

// SlogLevel parses the configured level
func (l Logging) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("invalid logging level %q: %w", l.Level, err)
	}
	return level, nil
}
