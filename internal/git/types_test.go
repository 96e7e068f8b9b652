package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReferenceName(t *testing.T) {
	tests := []struct {
		canonical string
		friendly  string
		isBranch  bool
	}{
		{"refs/heads/main", "main", true},
		{"refs/heads/release/1.x", "release/1.x", true},
		{"refs/remotes/origin/main", "origin/main", false},
		{"refs/tags/v1.0.0", "v1.0.0", false},
		{"HEAD", "HEAD", false},
	}
	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			ref := NewReferenceName(tt.canonical)
			require.Equal(t, tt.canonical, ref.Canonical)
			require.Equal(t, tt.friendly, ref.Friendly)
			require.Equal(t, tt.isBranch, ref.IsBranch())
		})
	}
}

func TestNewBranchReferenceName(t *testing.T) {
	ref := NewBranchReferenceName("main")
	require.Equal(t, "refs/heads/main", ref.Canonical)
	require.Equal(t, "main", Branch{Name: ref}.FriendlyName())
}

func TestCommit_ShortSha(t *testing.T) {
	require.Equal(t, "abc1234", Commit{Sha: "abc1234def"}.ShortSha())
	require.Equal(t, "abc", Commit{Sha: "abc"}.ShortSha())
}

func TestMockRepository_Defaults(t *testing.T) {
	m := &MockRepository{}
	require.Empty(t, m.Path())
	require.False(t, m.IsHeadDetached())
	_, err := m.RemoteURL("origin")
	require.ErrorIs(t, err, ErrRemoteNotFound)
	n, err := m.NumberOfUncommittedChanges()
	require.NoError(t, err)
	require.Zero(t, n)
}
