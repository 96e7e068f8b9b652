// Package github talks to the GitHub API on behalf of the release
// preflight: it authenticates the same credentials the engine's GitHub
// plugin will use, verifies repository access, and fetches remote
// configuration files.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a GitHub personal access token or GITHUB_TOKEN.
	// Falls back to the GITHUB_TOKEN, then GH_TOKEN env vars if empty.
	Token string

	// AppID is the GitHub App ID for app authentication.
	// Falls back to GH_APP_ID env var if zero.
	AppID int64

	// AppKey is the PEM content of a GitHub App private key.
	// Falls back to GH_APP_PRIVATE_KEY env var if empty.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file.
	// Falls back to GH_APP_PRIVATE_KEY_PATH env var if empty.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	// Falls back to GITHUB_API_URL env var if empty.
	BaseURL string

	// Owner is the repository owner, used for auto-detecting the app installation.
	Owner string
}

// ErrNoCredentials is returned when no token or app credentials are available.
var ErrNoCredentials = errors.New("no GitHub authentication provided: set GITHUB_TOKEN or GH_TOKEN, use --token, or provide --github-app-id and --github-app-key")

// TokenFromEnv returns the token the engine's GitHub plugin would read.
func TokenFromEnv() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}

// NewClient creates an authenticated GitHub API client.
// Auth resolution order: Token flag → GITHUB_TOKEN/GH_TOKEN env → App credentials → error.
func NewClient(ctx context.Context, cfg ClientConfig) (*gh.Client, error) {
	baseURL := resolveString(cfg.BaseURL, "GITHUB_API_URL")

	token := cfg.Token
	if token == "" {
		token = TokenFromEnv()
	}
	if token != "" {
		return newTokenClient(ctx, token, baseURL)
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	if appID == 0 {
		return nil, ErrNoCredentials
	}

	if key := resolveString(cfg.AppKey, "GH_APP_PRIVATE_KEY"); key != "" {
		return newAppClient(ctx, appID, cfg.Owner, baseURL, func(tr http.RoundTripper, installationID int64) (http.RoundTripper, error) {
			if installationID == 0 {
				return ghinstallation.NewAppsTransport(tr, appID, []byte(key))
			}
			return ghinstallation.New(tr, appID, installationID, []byte(key))
		})
	}
	if keyPath := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY_PATH"); keyPath != "" {
		return newAppClient(ctx, appID, cfg.Owner, baseURL, func(tr http.RoundTripper, installationID int64) (http.RoundTripper, error) {
			if installationID == 0 {
				return ghinstallation.NewAppsTransportKeyFromFile(tr, appID, keyPath)
			}
			return ghinstallation.NewKeyFromFile(tr, appID, installationID, keyPath)
		})
	}

	return nil, ErrNoCredentials
}

func newTokenClient(ctx context.Context, token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	if baseURL != "" {
		return gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	}
	return gh.NewClient(httpClient), nil
}

// transportFunc builds the app-level transport when installationID is zero
// and the installation transport otherwise.
type transportFunc func(tr http.RoundTripper, installationID int64) (http.RoundTripper, error)

func newAppClient(ctx context.Context, appID int64, owner, baseURL string, newTransport transportFunc) (*gh.Client, error) {
	appTransport, err := newTransport(http.DefaultTransport, 0)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if t, ok := appTransport.(*ghinstallation.AppsTransport); ok && baseURL != "" {
		t.BaseURL = baseURL
	}

	appClient, err := withBaseURL(gh.NewClient(&http.Client{Transport: appTransport}), baseURL)
	if err != nil {
		return nil, err
	}

	installationID, err := findInstallation(ctx, appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport, err := newTransport(http.DefaultTransport, installationID)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport for app %d: %w", appID, err)
	}
	if t, ok := installTransport.(*ghinstallation.Transport); ok && baseURL != "" {
		t.BaseURL = baseURL
	}

	return withBaseURL(gh.NewClient(&http.Client{Transport: installTransport}), baseURL)
}

func withBaseURL(client *gh.Client, baseURL string) (*gh.Client, error) {
	if baseURL == "" {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("setting enterprise URL: %w", err)
	}
	return c, nil
}

// findInstallation finds the GitHub App installation for the given owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}

		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// IsNotFoundError returns true if the error represents an HTTP 404 response
// from the GitHub API.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}

// ResolveBaseURL resolves the GitHub API base URL from the flag value or
// the GITHUB_API_URL environment variable. Returns empty string for github.com.
func ResolveBaseURL(flagValue string) string {
	return resolveString(flagValue, "GITHUB_API_URL")
}
