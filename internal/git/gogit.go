package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// ErrRemoteNotFound is returned when a named remote is not configured.
var ErrRemoteNotFound = errors.New("remote not found")

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path or any of its parents.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) IsHeadDetached() bool {
	ref, err := r.repo.Head()
	if err != nil {
		return false
	}
	return !ref.Name().IsBranch()
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	return Branch{
		Name:           NewReferenceName(string(ref.Name())),
		Tip:            &Commit{Sha: ref.Hash().String()},
		IsDetachedHead: !ref.Name().IsBranch(),
	}, nil
}

func (r *GoGitRepository) Remotes() ([]Remote, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}
	out := make([]Remote, 0, len(remotes))
	for _, rem := range remotes {
		cfg := rem.Config()
		out = append(out, Remote{Name: cfg.Name, URLs: append([]string{}, cfg.URLs...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *GoGitRepository) RemoteURL(name string) (string, error) {
	rem, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", fmt.Errorf("%s: %w", name, ErrRemoteNotFound)
		}
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

func (r *GoGitRepository) NumberOfUncommittedChanges() (int, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return 0, fmt.Errorf("getting status: %w", err)
	}

	count := 0
	for _, s := range status {
		if s.Worktree != gogit.Unmodified || s.Staging != gogit.Unmodified {
			count++
		}
	}
	return count, nil
}
