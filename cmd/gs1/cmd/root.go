/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/config"
	"github.com/ssargent/gs1kit/pkg/di"
	"github.com/ssargent/gs1kit/pkg/parser"
)

var container *di.Container

var errNoContainer = errors.New("dependency container not initialized")

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gs1",
	Short: "gs1 - GS1 Application Identifier decoder",
	Long: `gs1 decodes GS1 Application Identifier payloads as printed under
GS1-128 barcodes (parenthesis notation) or read from GS1 DataMatrix
symbols (concatenated notation with GS separators).

Configuration is read from --config, or from ~/.config/gs1/config.yaml when
that file exists. Flags override the file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return errNoContainer
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		container.SetConfig(cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/gs1/config.yaml if present)")
	rootCmd.PersistentFlags().String("mode", "", "Compliance mode: strict or lenient")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().String("ais", "", "YAML file of extra AI definitions, as written by 'gs1 ais -o yaml'")
}

// loadConfig resolves the configuration file and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if defaultPath := config.GetDefaultConfigPath(); config.ConfigExists(defaultPath) {
			configPath = defaultPath
		}
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("mode") {
		value, _ := cmd.Flags().GetString("mode")
		mode, err := parser.ParseMode(value)
		if err != nil {
			return nil, err
		}
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Format, _ = cmd.Flags().GetString("output")
	}
	if aisPath, _ := cmd.Flags().GetString("ais"); aisPath != "" {
		data, err := os.ReadFile(aisPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read AI file: %w", err)
		}
		specs, err := ai.LoadSpecs(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load AI file: %w", err)
		}
		cfg.AIs = append(cfg.AIs, specs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
