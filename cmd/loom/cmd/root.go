// Package cmd implements the loom CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Loom - declarative UI trees for Go",
	Long: `Loom is a retained-mode UI toolkit core for Go. Widgets describe the
interface, the reconciler keeps a persistent element tree in sync with
those descriptions, and the runtime loop schedules rebuilds frame by frame.

Use "loom <command> --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger, logErr := zap.NewDevelopment()
		if logErr == nil {
			logger.Error("command failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
