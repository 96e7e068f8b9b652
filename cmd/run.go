package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/engine"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/output"
)

var (
	flagDryRun    bool
	flagNoCI      bool
	flagSkipCheck bool
)

// runner launches the engine. Tests replace it.
var runner = engine.NewRunner(nil)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run semantic-release with the effective configuration",
	Long: `Run semantic-release through npx with the effective configuration. The
preflight checks run first and a failing check aborts the run.

Examples:
  releaserc run --dry-run
  releaserc run --no-ci --skip-check`,
	Args: cobra.NoArgs,
	RunE: runRunE,
}

func init() {
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "skip publishing (passed to the engine)")
	runCmd.Flags().BoolVar(&flagNoCI, "no-ci", false, "run outside a CI environment (passed to the engine)")
	runCmd.Flags().BoolVar(&flagSkipCheck, "skip-check", false, "do not run the preflight checks first")
	runCmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "branch to check (default: current HEAD)")

	rootCmd.AddCommand(runCmd)
}

func runRunE(cmd *cobra.Command, _ []string) error {
	if !flagSkipCheck {
		report, err := runPreflight(cmd, false)
		if err != nil {
			return err
		}
		if !report.Ready() {
			if err := output.WriteReport(cmd.ErrOrStderr(), report); err != nil {
				return err
			}
			return errNotReady
		}
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg, err = effectiveConfig(cfg)
	if err != nil {
		return err
	}

	return runner.Run(commandContext(cmd), cfg, engine.Options{
		Dir:    flagPath,
		DryRun: flagDryRun,
		NoCI:   flagNoCI,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
}
