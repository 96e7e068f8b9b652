package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

// Global flags shared across commands.
var (
	flagPath      string
	flagConfig    string
	flagOutput    string
	flagVerbosity string
)

// rootCmd is the top-level command for releaserc.
var rootCmd = &cobra.Command{
	Use:   "releaserc",
	Short: "Manage the release configuration of a semantic-release project",
	Long: `releaserc builds, validates and renders the release configuration read by
semantic-release, checks that a repository is ready for a release run, and
hands the configuration to the engine.

Without a subcommand the effective configuration is printed.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		log.Configure(log.Config{Level: flagVerbosity, Console: true})
	},
	// Default action is show.
	RunE: showRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the project repository")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for text")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "", "log verbosity: quiet, info, debug (default: $RELEASERC_LOG_LEVEL or info)")
	registerShowFlags(rootCmd)
}

// shutdownSignals cancel the command context, which stops a running engine.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
