package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/git"
	ghprovider "github.com/MyCarrier-DevOps/go-releaserc/internal/github"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/output"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/preflight"
)

var (
	flagBranch    string
	flagGitRemote string
	flagGitHub    bool
)

var errNotReady = errors.New("repository is not ready for a release")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the repository is ready for a release run",
	Long: `Check that a release run can succeed: the configuration is valid, the
current branch is a release branch, and the credentials the plugins read
are set. With --github the credentials are also used to verify push
access to the repository.

` + gitHubAuthHelp,
	Args: cobra.NoArgs,
	RunE: checkRunE,
}

func init() {
	checkCmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "branch to check (default: current HEAD)")
	checkCmd.Flags().StringVar(&flagGitRemote, "git-remote", "origin", "git remote identifying the GitHub repository")
	checkCmd.Flags().BoolVar(&flagGitHub, "github", false, "verify push access through the GitHub API")
	registerGitHubFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}

func checkRunE(cmd *cobra.Command, _ []string) error {
	report, err := runPreflight(cmd, flagGitHub)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagOutput == "json" {
		err = output.WriteJSON(w, report)
	} else {
		err = output.WriteReport(w, report)
	}
	if err != nil {
		return err
	}

	if !report.Ready() {
		return errNotReady
	}
	return nil
}

// runPreflight loads the effective configuration and checks it against the
// repository at --path.
func runPreflight(cmd *cobra.Command, verifyGitHub bool) (preflight.Report, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return preflight.Report{}, fmt.Errorf("loading configuration: %w", err)
	}
	if effective, err := effectiveConfig(cfg); err == nil {
		cfg = effective
	}

	in := preflight.Inputs{
		Config: cfg,
		Branch: flagBranch,
		Remote: flagGitRemote,
	}

	logger := log.WithComponent("cli")
	if repo, err := git.Open(flagPath); err == nil {
		in.Repo = repo
	} else {
		logger.Debug().Err(err).Str("path", flagPath).Msg("no git repository, skipping branch and worktree checks")
	}

	if verifyGitHub {
		owner := ""
		if in.Repo != nil {
			if url, err := in.Repo.RemoteURL(in.Remote); err == nil {
				if repo, err := ghprovider.ParseRepositoryURL(url); err == nil {
					owner = repo.Owner
				}
			}
		}
		client, err := newGitHubClient(commandContext(cmd), owner)
		if err != nil {
			return preflight.Report{}, err
		}
		in.GitHub = ghprovider.NewVerifier(client)
	}

	return preflight.Check(commandContext(cmd), in), nil
}
