// Package commands wires up the CLI surface of the statement analyzer.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "statement-analyzer",
		Short:   "Bank statement PDF analysis and loan readiness scoring",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCommand(&logLevel))
	rootCmd.AddCommand(newServeCommand(&logLevel))

	return rootCmd
}

// newLogger builds a console logger for CLI use.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
