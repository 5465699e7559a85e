/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/ypbank/pkg/config"
	"github.com/ssargent/ypbank/pkg/di"
	"github.com/ssargent/ypbank/pkg/logging"
)

var container *di.Container

// errFilesDiffer makes compare exit non-zero without printing an error
var errFilesDiffer = errors.New("files differ")

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ypbank",
	Short: "YPBank transaction record converter",
	Long: `ypbank converts YPBank transaction records between the binary (.bin),
CSV (.csv) and text (.txt) formats, compares record files across formats and
keeps record sets in a local archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return errors.New("dependency container not initialized")
		}
		// init writes the config file, so it must not fail on a broken one
		if cmd.Name() == "init" {
			return nil
		}
		return loadDependencies(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if flushErr := flushMetrics(); flushErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write metrics: %v\n", flushErr)
	}
	if err != nil {
		if !errors.Is(err, errFilesDiffer) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.config/ypbank/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit (overrides config)")
}

// configPath resolves the --config flag against the default location
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	return path
}

// loadDependencies reads the config file, applies flag overrides and builds the logger
func loadDependencies(cmd *cobra.Command) error {
	path := configPath(cmd)

	cfg := config.DefaultConfig()
	if config.ConfigExists(path) {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if metricsFile, _ := cmd.Flags().GetString("metrics-file"); metricsFile != "" {
		cfg.Metrics.Textfile = metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	logger.Debug("configuration loaded", "path", path, "exists", config.ConfigExists(path))
	return nil
}

// flushMetrics writes the metrics textfile when one is configured
func flushMetrics() error {
	if container == nil {
		return nil
	}
	path := container.GetConfig().Metrics.Textfile
	if path == "" {
		return nil
	}
	return container.GetMetrics().WriteTextfile(path)
}
