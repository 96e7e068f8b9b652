package cmd

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
	"github.com/spf13/cobra"

	ghprovider "github.com/MyCarrier-DevOps/go-releaserc/internal/github"
)

// GitHub credential flags shared by validate --remote and check --github.
var (
	flagToken      string
	flagAppID      int64
	flagAppKey     string
	flagAppKeyPath string
	flagGitHubURL  string
)

const gitHubAuthHelp = `Authentication (checked in order):
  1. --token flag, or the GITHUB_TOKEN or GH_TOKEN env vars
  2. --github-app-id + --github-app-key (PEM content) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars
  3. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars`

func registerGitHubFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN / GH_TOKEN env var)")
	cmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	cmd.Flags().StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	cmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	cmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
}

// newGitHubClient creates a client from the credential flags. owner is used
// to find the GitHub App installation.
func newGitHubClient(ctx context.Context, owner string) (*gh.Client, error) {
	client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKey:     flagAppKey,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    ghprovider.ResolveBaseURL(flagGitHubURL),
		Owner:      owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	return client, nil
}
