package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	ghprovider "github.com/MyCarrier-DevOps/go-releaserc/internal/github"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/output"
)

var (
	flagRemote           string
	flagRef              string
	flagRemoteConfigPath string
)

var errInvalidConfig = errors.New("configuration is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the release configuration",
	Long: `Validate the release configuration of the local project, or of a GitHub
repository with --remote. Keys the file leaves unset are filled with the
engine defaults before validation, as the engine does.

` + gitHubAuthHelp + `

Examples:
  releaserc validate
  releaserc validate --config ci/.releaserc.yaml
  GITHUB_TOKEN=ghp_xxx releaserc validate --remote myorg/myrepo --ref main`,
	Args: cobra.NoArgs,
	RunE: validateRunE,
}

func init() {
	validateCmd.Flags().StringVar(&flagRemote, "remote", "", "validate the configuration of a GitHub repository (owner/repo)")
	validateCmd.Flags().StringVar(&flagRef, "ref", "", "git ref to read the remote configuration from (default: repo default branch)")
	validateCmd.Flags().StringVar(&flagRemoteConfigPath, "remote-config-path", "", "path to the config file in the remote repo (default: auto-detect)")
	registerGitHubFlags(validateCmd)

	rootCmd.AddCommand(validateCmd)
}

// validationResult is the JSON form of a validate run.
type validationResult struct {
	Source   string   `json:"source"`
	Valid    bool     `json:"valid"`
	Issues   []string `json:"issues,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func validateRunE(cmd *cobra.Command, _ []string) error {
	var (
		cfg    *config.Config
		source string
		err    error
	)
	if flagRemote != "" {
		cfg, source, err = loadRemote(commandContext(cmd))
	} else {
		cfg, source, err = loadConfig()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	result := validateConfig(cfg, source)

	w := cmd.OutOrStdout()
	if flagOutput == "json" {
		if err := output.WriteJSON(w, result); err != nil {
			return err
		}
	} else {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "error: %s\n", issue)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintf(w, "%s: valid\n", source)
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: %w", source, errInvalidConfig)
	}
	return nil
}

func validateConfig(cfg *config.Config, source string) validationResult {
	result := validationResult{Source: source, Valid: true}

	effective, err := effectiveConfig(cfg)
	if err != nil {
		result.Valid = false
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			result.Issues = verr.Issues
		} else {
			result.Issues = []string{err.Error()}
		}
		effective = cfg
	}
	result.Warnings = config.Warnings(effective)
	return result
}

func loadRemote(ctx context.Context) (*config.Config, string, error) {
	repo, err := ghprovider.ParseOwnerRepo(flagRemote)
	if err != nil {
		return nil, "", err
	}
	client, err := newGitHubClient(ctx, repo.Owner)
	if err != nil {
		return nil, "", err
	}
	return ghprovider.LoadConfig(ctx, ghprovider.NewVerifier(client), repo, flagRef, flagRemoteConfigPath)
}
