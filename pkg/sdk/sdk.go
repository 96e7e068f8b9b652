// Package sdk provides a public Go API for the release configuration of a
// semantic-release project: build or load it, render it in any supported
// file format, check that a repository is ready for a release run, and run
// the engine with it.
//
// Basic usage:
//
//	cfg := sdk.Default()
//	data, err := sdk.Render(cfg, sdk.FormatYAML)
//
//	result, err := sdk.Load(sdk.LoadOptions{Path: "/path/to/repo"})
//	fmt.Println(result.Source, result.Config.BranchNames())
//
//	report, err := sdk.Check(ctx, sdk.CheckOptions{Path: "/path/to/repo"})
//	fmt.Println(report.Ready())
package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/engine"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/git"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/preflight"

	ghprovider "github.com/MyCarrier-DevOps/go-releaserc/internal/github"
)

type (
	// Config is a release configuration record.
	Config = config.Config
	// Branch is a release branch entry.
	Branch = config.Branch
	// Plugin is a plugin reference.
	Plugin = config.Plugin
	// ReleaseRule maps matching commits to a release type.
	ReleaseRule = config.ReleaseRule
	// Format is a configuration file format.
	Format = config.Format
	// Report is the result of a preflight check.
	Report = preflight.Report
	// Finding is one preflight check result.
	Finding = preflight.Finding
)

// Supported formats.
const (
	FormatJSON = config.FormatJSON
	FormatYAML = config.FormatYAML
	FormatTOML = config.FormatTOML
	FormatJS   = config.FormatJS
)

// Default returns the project release configuration.
func Default() *Config {
	return config.Default()
}

// LoadOptions configures loading a configuration from a local project.
type LoadOptions struct {
	// Path to the project directory. Defaults to "." if empty.
	Path string

	// ConfigPath is an explicit configuration file. If empty, the file is
	// discovered in Path; without one the project record is returned.
	ConfigPath string

	// Effective fills the top-level keys the file leaves unset with the
	// engine defaults.
	Effective bool
}

// RemoteOptions configures loading a configuration through the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to read from. Defaults to the repository's default
	// branch.
	Ref string

	// ConfigPath is the file to read. If empty, the configuration file
	// names are tried in search order.
	ConfigPath string

	// Effective fills the top-level keys the file leaves unset with the
	// engine defaults.
	Effective bool
}

// LoadResult holds a loaded configuration and where it came from.
type LoadResult struct {
	Config *Config

	// Source is the file path, "owner/repo:path" for remote loads, or
	// "default" when no file was found.
	Source string

	// Warnings lists suspicious but valid settings.
	Warnings []string
}

// Load loads and validates the configuration of a local project.
func Load(opts LoadOptions) (*LoadResult, error) {
	if opts.Path == "" {
		opts.Path = "."
	}

	path := opts.ConfigPath
	if path == "" {
		found, err := config.Discover(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("searching for configuration: %w", err)
		}
		path = found
	}

	if path == "" {
		return finish(config.Default(), "default", opts.Effective)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return finish(cfg, path, opts.Effective)
}

// LoadRemote loads and validates the configuration of a GitHub repository.
func LoadRemote(ctx context.Context, opts RemoteOptions) (*LoadResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    ghprovider.ResolveBaseURL(opts.BaseURL),
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	repo := ghprovider.Repository{Owner: opts.Owner, Name: opts.Repo}
	cfg, source, err := ghprovider.LoadConfig(ctx, ghprovider.NewVerifier(client), repo, opts.Ref, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return finish(cfg, source, opts.Effective)
}

func finish(cfg *Config, source string, effective bool) (*LoadResult, error) {
	if effective {
		built, err := config.NewBuilder().Add(cfg).Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		cfg = built
	} else if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &LoadResult{Config: cfg, Source: source, Warnings: config.Warnings(cfg)}, nil
}

// Validate reports every rule violation of cfg as a single error, and the
// warnings for suspicious but valid settings.
func Validate(cfg *Config) (warnings []string, err error) {
	return config.Warnings(cfg), config.Validate(cfg)
}

// Parse reads a configuration in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	return config.LoadFromBytes(data, format)
}

// Render encodes cfg in the given format.
func Render(cfg *Config, format Format) ([]byte, error) {
	return config.Marshal(cfg, format)
}

// CheckOptions configures a preflight check.
type CheckOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Config is checked when set. Otherwise the effective configuration is
	// loaded from Path.
	Config *Config

	// Branch overrides the branch read from the repository.
	Branch string

	// Remote is the git remote identifying the GitHub repository.
	// Defaults to "origin".
	Remote string

	// VerifyGitHub verifies push access through the GitHub API with Token,
	// or the credentials in the environment.
	VerifyGitHub bool
	Token        string
	BaseURL      string
}

// Check runs the preflight checks against a local repository. Check
// failures are reported in the Report; the error is only set when the
// checks could not run.
func Check(ctx context.Context, opts CheckOptions) (*Report, error) {
	if opts.Path == "" {
		opts.Path = "."
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := Load(LoadOptions{Path: opts.Path, Effective: true})
		if err != nil {
			return nil, err
		}
		cfg = loaded.Config
	}

	in := preflight.Inputs{
		Config: cfg,
		Branch: opts.Branch,
		Remote: opts.Remote,
	}
	if repo, err := git.Open(opts.Path); err == nil {
		in.Repo = repo
	}

	if opts.VerifyGitHub {
		client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
			Token:   opts.Token,
			BaseURL: ghprovider.ResolveBaseURL(opts.BaseURL),
		})
		if err != nil {
			return nil, fmt.Errorf("creating GitHub client: %w", err)
		}
		in.GitHub = ghprovider.NewVerifier(client)
	}

	report := preflight.Check(ctx, in)
	return &report, nil
}

// RunOptions configures an engine run.
type RunOptions = engine.Options

// Run runs semantic-release in opts.Dir with cfg.
func Run(ctx context.Context, cfg *Config, opts RunOptions) error {
	return engine.NewRunner(nil).Run(ctx, cfg, opts)
}
