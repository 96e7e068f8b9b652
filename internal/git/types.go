// Package git reads the local repository facts a release run depends on:
// the checked-out branch, its tip commit, the remotes and the worktree state.
package git

import "strings"

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
	tagRefPrefix               = "refs/tags/"
)

// Commit identifies a git commit.
type Commit struct {
	Sha string
}

// ShortSha returns the first 7 characters of the SHA.
func (c Commit) ShortSha() string {
	if len(c.Sha) >= 7 {
		return c.Sha[:7]
	}
	return c.Sha
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical string // e.g., "refs/heads/main"
	Friendly  string // e.g., "main"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	for _, prefix := range []string{localBranchPrefix, remoteTrackingBranchPrefix, tagRefPrefix} {
		if strings.HasPrefix(canonical, prefix) {
			friendly = canonical[len(prefix):]
			break
		}
	}
	return ReferenceName{Canonical: canonical, Friendly: friendly}
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// IsBranch returns true if this reference is a local branch.
func (r ReferenceName) IsBranch() bool {
	return strings.HasPrefix(r.Canonical, localBranchPrefix)
}

// Branch represents the checked-out branch.
type Branch struct {
	Name           ReferenceName
	Tip            *Commit
	IsDetachedHead bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}

// Remote is a configured git remote.
type Remote struct {
	Name string
	URLs []string
}
