package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/output"
)

var (
	flagFormat       string
	flagPlan         bool
	flagEffective    bool
	flagVariables    bool
	flagShowVariable string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the release configuration",
	Long: `Print the release configuration found in the project, or the project
record when there is no configuration file.

Examples:
  releaserc show --format yaml
  releaserc show --effective --plan
  releaserc show --show-variable MaxRelease`,
	Args: cobra.NoArgs,
	RunE: showRunE,
}

// registerShowFlags adds the show flags to cmd. The root command carries
// them too because show is its default action.
func registerShowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "json", "configuration format: json, yaml, toml or js")
	cmd.Flags().BoolVar(&flagPlan, "plan", false, "print the branches, rules and lifecycle plan instead of the file")
	cmd.Flags().BoolVar(&flagEffective, "effective", false, "fill unset keys with the engine defaults")
	cmd.Flags().BoolVar(&flagVariables, "variables", false, "print summary variables as key=value pairs (or JSON with -o json)")
	cmd.Flags().StringVar(&flagShowVariable, "show-variable", "", "output a single summary variable (e.g. Preset, MaxRelease)")
}

func init() {
	registerShowFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}

func showRunE(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagEffective {
		if cfg, err = effectiveConfig(cfg); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()

	switch {
	case flagShowVariable != "":
		return output.WriteVariable(w, output.GetVariables(cfg), flagShowVariable)
	case flagVariables:
		vars := output.GetVariables(cfg)
		if flagOutput == "json" {
			return output.WriteJSON(w, vars)
		}
		return output.WriteAll(w, vars)
	case flagPlan:
		if flagOutput == "json" {
			return output.WriteJSON(w, cfg.Plan())
		}
		return output.WritePlan(w, cfg)
	}

	format, err := config.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	return output.WriteConfig(w, cfg, format)
}
