/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/gs1kit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file, to ~/.config/gs1/config.yaml unless
a path is given. The --mode flag sets the compliance mode stored in it.

Examples:
  gs1 init
  gs1 init --mode strict ./gs1.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		configPath := config.GetDefaultConfigPath()
		if len(args) == 1 {
			configPath = args[0]
		}

		if config.ConfigExists(configPath) && !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, container.GetConfig().Mode)
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s configuration to %s\n", cfg.Mode, configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
