// Package cmd provides CLI commands for statement.
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-converter/pkg/config"
)

var (
	cfgFile string
	debug   bool

	deps *Dependencies
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "statement",
	Short: "Convert bank statement rows into transaction tables",
	Long: `statement turns the table rows extracted from bank statement PDFs into
clean transaction tables, and maintains a payee/category journal used to
categorize new statements.

Example:
  statement process statement.rows.csv -j journal.sqlite
  statement journal 2023.csv 2024.xlsx journal.sqlite
  statement journal search journal.sqlite spotify`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger := newLogger(cfg.Log, debug).With("run_id", uuid.NewString())
		slog.SetDefault(logger)

		deps, err = InitDependencies(cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		deps.logScoreCache()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), "Error: %v", err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".env", "env file with configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(cfg config.LogConfig, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
