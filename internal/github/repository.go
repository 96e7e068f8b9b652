package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

var (
	// ErrRepositoryNotFound is returned when the repository does not exist or
	// the credentials cannot see it.
	ErrRepositoryNotFound = errors.New("repository not found or not visible to the provided credentials")
	// ErrNoPushPermission is returned when the credentials cannot push, which
	// the engine needs to create tags and releases.
	ErrNoPushPermission = errors.New("credentials lack push permission")
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseOwnerRepo parses an "owner/repo" string.
func ParseOwnerRepo(s string) (Repository, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

// ParseRepositoryURL extracts owner and name from a git remote URL. HTTPS,
// ssh:// and scp-style (git@host:owner/repo.git) URLs are supported.
func ParseRepositoryURL(raw string) (Repository, error) {
	raw = strings.TrimSpace(raw)
	var path string

	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Repository{}, fmt.Errorf("parsing repository URL %q: %w", raw, err)
		}
		path = u.Path
	case strings.Contains(raw, ":"):
		// scp-style: [user@]host:owner/repo.git
		path = raw[strings.Index(raw, ":")+1:]
	default:
		return Repository{}, fmt.Errorf("unrecognized repository URL %q", raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return Repository{}, fmt.Errorf("repository URL %q has no owner/repo path", raw)
	}
	return Repository{Owner: parts[len(parts)-2], Name: parts[len(parts)-1]}, nil
}

// Access describes what the credentials may do on a repository.
type Access struct {
	FullName      string
	DefaultBranch string
	Private       bool
	CanPush       bool
	// PermissionsKnown is false when the API omits permissions, as it does
	// for GitHub App installation tokens.
	PermissionsKnown bool
}

// Verifier checks repository access with an authenticated client.
type Verifier struct {
	client *gh.Client
}

// NewVerifier creates a Verifier.
func NewVerifier(client *gh.Client) *Verifier {
	return &Verifier{client: client}
}

// Verify fetches the repository and reports the caller's permissions. It
// returns ErrRepositoryNotFound for a 404 and ErrNoPushPermission, along
// with the access details, when the credentials are known to be read-only.
func (v *Verifier) Verify(ctx context.Context, repo Repository) (Access, error) {
	r, _, err := v.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		if IsNotFoundError(err) {
			return Access{}, fmt.Errorf("%s: %w", repo, ErrRepositoryNotFound)
		}
		return Access{}, fmt.Errorf("fetching repository %s: %w", repo, err)
	}

	access := Access{
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
	}
	// GetPermissions never returns nil; an absent field means the token
	// type does not report permissions.
	perms := r.Permissions
	access.PermissionsKnown = perms != nil
	access.CanPush = perms["push"] || perms["admin"] || perms["maintain"]
	if access.PermissionsKnown && !access.CanPush {
		return access, fmt.Errorf("%s: %w", repo, ErrNoPushPermission)
	}
	return access, nil
}

// FetchFileContent fetches a file's content from the repository. An empty
// ref reads from the default branch.
func (v *Verifier) FetchFileContent(ctx context.Context, repo Repository, ref, path string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{}
	if ref != "" {
		opts.Ref = ref
	}

	content, _, _, err := v.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return "", fmt.Errorf("fetching file %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding file content: %w", err)
	}
	return decoded, nil
}
