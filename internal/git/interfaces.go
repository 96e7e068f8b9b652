package git

// Repository provides the read-only git queries used before a release run.
// This is the key abstraction point for testing.
type Repository interface {
	// Path returns the path to the .git directory.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// IsHeadDetached returns true if HEAD is not pointing to a branch.
	IsHeadDetached() bool

	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// Remotes returns the configured remotes sorted by name.
	Remotes() ([]Remote, error)

	// RemoteURL returns the first URL of the named remote.
	RemoteURL(name string) (string, error)

	// NumberOfUncommittedChanges returns the count of uncommitted changes
	// in the working directory.
	NumberOfUncommittedChanges() (int, error)
}
