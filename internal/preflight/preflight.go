// Package preflight checks whether a release run can succeed before the
// engine is started: the configuration is valid, the checked-out branch is
// a release branch, the credentials the plugins read are present and, when
// a GitHub client is available, they can push to the repository.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/git"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/github"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check names, in the order findings are reported.
const (
	CheckConfig   = "config"
	CheckBranch   = "branch"
	CheckWorktree = "worktree"
	CheckEnv      = "env"
	CheckGitHub   = "github"
)

// Finding is one reported result.
type Finding struct {
	Check   string `json:"check"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Report is the ordered list of findings of a preflight run.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Ready reports whether no check failed.
func (r Report) Ready() bool {
	for _, f := range r.Findings {
		if f.Status == StatusFail {
			return false
		}
	}
	return true
}

// Count returns the number of findings with the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) add(check string, status Status, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Check: check, Status: status, Message: fmt.Sprintf(format, args...)})
}

// RepositoryVerifier checks repository access. *github.Verifier satisfies it.
type RepositoryVerifier interface {
	Verify(ctx context.Context, repo github.Repository) (github.Access, error)
}

// Inputs collects what Check inspects. Only Config is required.
type Inputs struct {
	Config *config.Config
	// Repo is the local repository. Branch and worktree checks are skipped
	// when it is nil and Branch is empty.
	Repo git.Repository
	// Branch overrides the branch read from the repository.
	Branch string
	// Remote names the git remote whose URL identifies the GitHub
	// repository. Defaults to "origin".
	Remote string
	// Getenv reads the environment. Defaults to os.Getenv.
	Getenv func(string) string
	// GitHub, when set, verifies push access to the repository.
	GitHub RepositoryVerifier
}

// ciBranchVars hold the branch name on CI systems that check out a
// detached HEAD.
var ciBranchVars = []string{
	"GITHUB_REF_NAME",
	"CI_COMMIT_BRANCH",
	"BRANCH_NAME",
	"BUILDKITE_BRANCH",
	"CIRCLE_BRANCH",
}

// Check runs every applicable check and returns the report.
func Check(ctx context.Context, in Inputs) Report {
	if in.Getenv == nil {
		in.Getenv = os.Getenv
	}
	if in.Remote == "" {
		in.Remote = "origin"
	}

	var report Report
	cfg := in.Config
	if cfg == nil {
		report.add(CheckConfig, StatusFail, "no configuration loaded")
		return report
	}

	checkConfig(&report, cfg)
	checkBranch(&report, in)
	checkWorktree(&report, in.Repo)
	checkEnv(&report, cfg, in.Getenv)
	if in.GitHub != nil {
		checkGitHub(ctx, &report, in)
	}

	logger := log.WithComponent("preflight")
	for _, f := range report.Findings {
		logger.Debug().Str("check", f.Check).Str("status", string(f.Status)).Msg(f.Message)
	}
	return report
}

func checkConfig(report *Report, cfg *config.Config) {
	if err := config.Validate(cfg); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				report.add(CheckConfig, StatusFail, "%s", issue)
			}
		} else {
			report.add(CheckConfig, StatusFail, "%v", err)
		}
	} else {
		report.add(CheckConfig, StatusOK, "configuration is valid (%d branches, %d plugins)", len(cfg.Branches), len(cfg.Plugins))
	}
	for _, w := range config.Warnings(cfg) {
		report.add(CheckConfig, StatusWarn, "%s", w)
	}
}

// currentBranch resolves the branch to check: the explicit override, the
// checked-out branch, or the CI variables when HEAD is detached.
func currentBranch(in Inputs) (string, error) {
	if in.Branch != "" {
		return in.Branch, nil
	}
	if in.Repo == nil {
		return "", nil
	}
	if !in.Repo.IsHeadDetached() {
		head, err := in.Repo.Head()
		if err != nil {
			return "", fmt.Errorf("reading HEAD: %w", err)
		}
		return head.FriendlyName(), nil
	}
	for _, key := range ciBranchVars {
		if v := in.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", errors.New("HEAD is detached and no CI branch variable is set")
}

func checkBranch(report *Report, in Inputs) {
	if in.Branch == "" && in.Repo == nil {
		return
	}
	name, err := currentBranch(in)
	if err != nil {
		report.add(CheckBranch, StatusWarn, "cannot determine the current branch: %v", err)
		return
	}

	label := fmt.Sprintf("%q", name)
	if sha := headSha(in.Repo); sha != "" && in.Branch == "" {
		label += " at " + sha
	}

	b, ok := in.Config.MatchBranch(name)
	switch {
	case !ok:
		report.add(CheckBranch, StatusFail, "branch %s is not a release branch (configured: %s)",
			label, strings.Join(in.Config.BranchNames(), ", "))
	case b.IsPrerelease():
		report.add(CheckBranch, StatusOK, "branch %s matches %q and releases prereleases %q",
			label, b.Name, b.Prerelease.Identifier(name))
	case b.Name == name:
		report.add(CheckBranch, StatusOK, "branch %s is a release branch", label)
	default:
		report.add(CheckBranch, StatusOK, "branch %s matches release branch pattern %q", label, b.Name)
	}
}

// headSha returns the abbreviated HEAD commit, or "" when it is unknown.
func headSha(repo git.Repository) string {
	if repo == nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil || head.Tip == nil {
		return ""
	}
	return head.Tip.ShortSha()
}

func checkWorktree(report *Report, repo git.Repository) {
	if repo == nil {
		return
	}
	n, err := repo.NumberOfUncommittedChanges()
	switch {
	case err != nil:
		report.add(CheckWorktree, StatusWarn, "cannot read worktree status: %v", err)
	case n > 0:
		report.add(CheckWorktree, StatusWarn, "%d uncommitted changes will not be part of the release", n)
	default:
		report.add(CheckWorktree, StatusOK, "worktree is clean")
	}
}

func checkEnv(report *Report, cfg *config.Config, getenv func(string) string) {
	for _, req := range cfg.RequiredEnv() {
		found := ""
		for _, key := range req.AnyOf {
			if getenv(key) != "" {
				found = key
				break
			}
		}
		if found != "" {
			report.add(CheckEnv, StatusOK, "%s: %s is set", req.Plugin, found)
		} else {
			report.add(CheckEnv, StatusFail, "%s: none of %s is set", req.Plugin, strings.Join(req.AnyOf, ", "))
		}
	}
}

// targetRepository identifies the GitHub repository from the configured
// repositoryUrl or, failing that, the git remote.
func targetRepository(in Inputs) (github.Repository, error) {
	url := in.Config.RepositoryURL
	if url == "" {
		if in.Repo == nil {
			return github.Repository{}, errors.New("no repositoryUrl configured and no local repository")
		}
		var err error
		url, err = in.Repo.RemoteURL(in.Remote)
		if errors.Is(err, git.ErrRemoteNotFound) {
			return github.Repository{}, fmt.Errorf("remote %q is not configured (%s)", in.Remote, remoteCandidates(in.Repo))
		}
		if err != nil {
			return github.Repository{}, fmt.Errorf("reading remote %q: %w", in.Remote, err)
		}
	}
	return github.ParseRepositoryURL(url)
}

// remoteCandidates describes the remotes that could be passed instead.
func remoteCandidates(repo git.Repository) string {
	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		return "no remotes configured"
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Name)
	}
	return "available: " + strings.Join(names, ", ")
}

func checkGitHub(ctx context.Context, report *Report, in Inputs) {
	repo, err := targetRepository(in)
	if err != nil {
		report.add(CheckGitHub, StatusFail, "cannot identify the GitHub repository: %v", err)
		return
	}

	access, err := in.GitHub.Verify(ctx, repo)
	switch {
	case errors.Is(err, github.ErrNoPushPermission):
		report.add(CheckGitHub, StatusFail, "credentials can read %s but cannot push tags or releases", repo)
	case errors.Is(err, github.ErrRepositoryNotFound):
		report.add(CheckGitHub, StatusFail, "%s not found or not visible to the credentials", repo)
	case err != nil:
		report.add(CheckGitHub, StatusFail, "verifying %s: %v", repo, err)
	case !access.PermissionsKnown:
		report.add(CheckGitHub, StatusWarn, "%s is visible but the API did not report permissions", repo)
	default:
		report.add(CheckGitHub, StatusOK, "credentials can push to %s (default branch %s)", access.FullName, access.DefaultBranch)
	}
}
