// Package main provides the CLI entry point for mantidproj.
package main

import (
	"fmt"
	"os"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    Config
	logger *logrus.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mantidproj",
		Short: "Inspect and convert MantidPlot project files",
		Long: `mantidproj reads MantidPlot and QtiPlot project files (.mantid, .qti,
optionally gzipped), rewrites them in the current format version and converts
their tables to and from Excel workbooks.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		newInspectCmd(),
		newResaveCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return rootCmd
}

// setup loads the config file and configures the session logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logger = logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	return nil
}

// projectOptions builds library options from the config for cmd.
func projectOptions(cmd *cobra.Command) mantidproj.Options {
	return cfg.Options(logger, cmd.InOrStdin(), cmd.ErrOrStderr())
}
