package git

import "fmt"

// MainBranch is the shared integration branch pull-request branches are
// merged into and updated from.
const MainBranch = "master"

// OperationError reports a failed git operation. The reason carries the
// command's stderr verbatim; operations are never retried, a failure aborts
// the enclosing command.
type OperationError struct {
	Op     string
	Reason string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("git %s failed: %s", e.Op, e.Reason)
}

// Git defines the version-control operations gitpr needs. All operations are
// synchronous and block until the underlying git process exits.
type Git interface {
	// CurrentBranch returns the symbolic name of HEAD.
	CurrentBranch() (string, error)

	// BranchExists reports whether a local branch with the name exists.
	BranchExists(name string) (bool, error)

	// Checkout switches the working tree to the branch.
	Checkout(branch string) error

	// DeleteBranch deletes a local branch, forcing when it has unmerged commits.
	DeleteBranch(branch string, force bool) error

	// FetchBranch fetches remoteRef from remoteURL into the local branch.
	FetchBranch(remoteURL, remoteRef, localBranch string) error

	// Pull fetches remoteRef from remoteURL and merges it into the working
	// tree. Runs attached to the terminal: a conflict leaves the repository
	// in a merge state for the user to resolve.
	Pull(remoteURL, remoteRef string) error

	// Merge merges the ref into the current branch. Runs attached to the
	// terminal; a nonzero exit may mean conflicts.
	Merge(ref string) error

	// Rebase rebases the current branch onto the ref. Runs attached to the
	// terminal; a nonzero exit may mean conflicts.
	Rebase(onto string) error

	// Commit opens an interactive commit, used to finish a conflicted merge.
	Commit() error

	// ContinueRebase resumes an interrupted rebase after conflict resolution.
	ContinueRebase() error

	// ResetHardAndClean discards all uncommitted changes and untracked files.
	ResetHardAndClean() error

	// Push pushes the branch to the named remote.
	Push(remote, branch string) error

	// TopLevel returns the absolute path of the repository root.
	TopLevel() (string, error)

	// ConfigIsSymlink reports whether .git/config is a symbolic link, which
	// marks the checkout as a secondary work directory.
	ConfigIsSymlink() (bool, error)

	// ConfigSymlinkTarget returns the target of the .git/config symlink.
	ConfigSymlinkTarget() (string, error)

	// RemoteURL returns the fetch URL of the named remote, or "" when the
	// remote does not exist.
	RemoteURL(name string) (string, error)

	// ConfigValues returns all git config entries whose names match the
	// regexp pattern, keyed by full config name.
	ConfigValues(pattern string) (map[string]string, error)
}
