// Package cmd provides the CLI commands for concord.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmhobbs/concord/internal/logging"
	"github.com/jmhobbs/concord/pkg/version"
)

// Persistent flags shared by every command.
var (
	cfgPath     string
	translation string
	noColor     bool
	debugMode   bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the concord CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concord [reference]",
		Short: "Offline Bible verse lookup and full-text search",
		Long: `Concord looks up verses by reference and searches the full text
of public-domain Bible translations, entirely offline.

A bare argument is treated as a reference lookup:

  concord "John 3:16"
  concord "Gen 1:1-3"
  concord "Ps 23"

Use 'concord search' for ranked free-text search.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runLookup(cmd, strings.Join(args, " "))
		},
	}

	cmd.SetVersionTemplate("concord version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVarP(&translation, "translation", "t", "", "Translation to use (kjv, asv)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newBooksCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging routes structured logs to the log file, at debug level
// when --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg.Level = "debug"
	}
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	loggingCleanup = cleanup
	if debugMode {
		slog.Debug("debug_logging_enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Short()))
	}
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
