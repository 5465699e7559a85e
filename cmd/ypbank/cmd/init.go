/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/ypbank/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default settings.

The file is written to --config or ~/.config/ypbank/config.yaml. An existing
file is kept unless --force is given.

Examples:
  ypbank init
  ypbank init --config ./ypbank.yaml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return initializeConfig(cmd.OutOrStdout(), configPath(cmd), force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// initializeConfig writes the default configuration to path
func initializeConfig(out io.Writer, path string, force bool) error {
	if config.ConfigExists(path) && !force {
		fmt.Fprintf(out, "Configuration already exists at %s. Use --force to overwrite.\n", path)
		return nil
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
	return nil
}
