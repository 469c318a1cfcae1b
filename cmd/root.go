package cmd

import (
	"errors"
	"fmt"
	"os"

	"journal-loader/core/logger"
	"journal-loader/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes reported by Execute.
const (
	exitFailure       = 1
	exitConfiguration = 2
)

// configDir is the directory LoadConfig reads the .env file from.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "journal-loader",
	Short: "Journal metadata loader",
	Long: `Journal Loader keeps a journals table in sync with the NLM Medline list
and the NIH PMC type A journal list, from local files or S3 storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure. Configuration
// errors exit with 2 so scripts can tell them from failed runs.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console at debug level gives readable timestamps on the terminal.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console", Output: "stderr"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
	} else {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if errors.Is(err, reconcile.ErrConfiguration) {
		return exitConfiguration
	}
	return exitFailure
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}
