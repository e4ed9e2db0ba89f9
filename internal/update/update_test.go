package update

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmckinley/gitpr/internal/config"
	"github.com/cmckinley/gitpr/internal/git"
	"github.com/cmckinley/gitpr/internal/workspace"
)

// mockGit implements git.Git with overridable functions and records the
// operations invoked.
type mockGit struct {
	calls []string

	currentBranchFn func() (string, error)
	checkoutFn      func(branch string) error
	mergeFn         func(ref string) error
	rebaseFn        func(onto string) error
	commitFn        func() error
	continueFn      func() error
	resetFn         func() error
}

var _ git.Git = &mockGit{}

func (m *mockGit) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *mockGit) CurrentBranch() (string, error) {
	m.record("current-branch")
	if m.currentBranchFn != nil {
		return m.currentBranchFn()
	}
	return "pull-request-42", nil
}

func (m *mockGit) Checkout(branch string) error {
	m.record("checkout " + branch)
	if m.checkoutFn != nil {
		return m.checkoutFn(branch)
	}
	return nil
}

func (m *mockGit) Merge(ref string) error {
	m.record("merge " + ref)
	if m.mergeFn != nil {
		return m.mergeFn(ref)
	}
	return nil
}

func (m *mockGit) Rebase(onto string) error {
	m.record("rebase " + onto)
	if m.rebaseFn != nil {
		return m.rebaseFn(onto)
	}
	return nil
}

func (m *mockGit) Commit() error {
	m.record("commit")
	if m.commitFn != nil {
		return m.commitFn()
	}
	return nil
}

func (m *mockGit) ContinueRebase() error {
	m.record("continue-rebase")
	if m.continueFn != nil {
		return m.continueFn()
	}
	return nil
}

func (m *mockGit) ResetHardAndClean() error {
	m.record("reset-hard-and-clean")
	if m.resetFn != nil {
		return m.resetFn()
	}
	return nil
}

func (m *mockGit) BranchExists(string) (bool, error)              { return false, nil }
func (m *mockGit) DeleteBranch(string, bool) error                { return nil }
func (m *mockGit) FetchBranch(string, string, string) error       { return nil }
func (m *mockGit) Pull(string, string) error                      { return nil }
func (m *mockGit) Push(string, string) error                      { return nil }
func (m *mockGit) TopLevel() (string, error)                      { return "/primary", nil }
func (m *mockGit) ConfigIsSymlink() (bool, error)                 { return false, nil }
func (m *mockGit) ConfigSymlinkTarget() (string, error)           { return "", nil }
func (m *mockGit) RemoteURL(string) (string, error)               { return "", nil }
func (m *mockGit) ConfigValues(string) (map[string]string, error) { return nil, nil }

func newWorkspace(t *testing.T, workDir string, inWorkDir bool) *workspace.Workspace {
	t.Helper()
	breadcrumb := filepath.Join(t.TempDir(), "chdir")
	return workspace.New(workDir, "/primary", inWorkDir,
		workspace.WithBreadcrumbPath(breadcrumb),
		workspace.WithChdir(func(string) error { return nil }))
}

func TestRunMergeCleanly(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateMerge)
	require.NoError(t, u.Run("pull-request-42"))

	assert.Equal(t, []string{"checkout pull-request-42", "merge master"}, g.calls)
}

func TestRunRebaseCleanly(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateRebase)
	require.NoError(t, u.Run("pull-request-42"))

	assert.Equal(t, []string{"checkout pull-request-42", "rebase master"}, g.calls)
}

func TestRunConflict(t *testing.T) {
	g := &mockGit{
		mergeFn: func(string) error {
			return &git.OperationError{Op: "merge", Reason: "conflict"}
		},
	}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateMerge)
	err := u.Run("pull-request-42")

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, "pull-request-42", conflictErr.Branch)
	assert.Contains(t, conflictErr.ResumeInstructions(), "continue-update")
}

func TestRunRefusedInsideWorkDir(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "/work", true)

	u := New(g, ws, config.UpdateMerge)
	err := u.Run("pull-request-42")

	var inWorkDirErr *workspace.InWorkDirError
	require.True(t, errors.As(err, &inWorkDirErr))
	assert.Empty(t, g.calls)
}

func TestRunInWorkDirResyncsPrimary(t *testing.T) {
	g := &mockGit{
		currentBranchFn: func() (string, error) {
			// After returning to the primary directory HEAD is already on
			// the updated branch.
			return "pull-request-42", nil
		},
	}
	ws := newWorkspace(t, "/work", false)

	u := New(g, ws, config.UpdateMerge)
	require.NoError(t, u.Run("pull-request-42"))

	assert.Equal(t, []string{
		"reset-hard-and-clean", // discard stale work-directory state
		"checkout pull-request-42",
		"merge master",
		"checkout master", // park the work directory
		"current-branch",
		"reset-hard-and-clean", // sync the primary with the result
	}, g.calls)
	assert.False(t, ws.InWorkDir())
}

func TestRunInWorkDirChecksOutWhenPrimaryElsewhere(t *testing.T) {
	g := &mockGit{
		currentBranchFn: func() (string, error) {
			return "some-other-branch", nil
		},
	}
	ws := newWorkspace(t, "/work", false)

	u := New(g, ws, config.UpdateMerge)
	require.NoError(t, u.Run("pull-request-42"))

	assert.Equal(t, "checkout pull-request-42", g.calls[len(g.calls)-1])
}

func TestRunConflictInWorkDirLeavesBreadcrumb(t *testing.T) {
	g := &mockGit{
		mergeFn: func(string) error {
			return &git.OperationError{Op: "merge", Reason: "conflict"}
		},
	}
	breadcrumb := filepath.Join(t.TempDir(), "chdir")
	ws := workspace.New("/work", "/primary", false,
		workspace.WithBreadcrumbPath(breadcrumb),
		workspace.WithChdir(func(string) error { return nil }))

	u := New(g, ws, config.UpdateMerge)
	err := u.Run("pull-request-42")

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))

	// The process stays in the work directory and the breadcrumb points
	// there so the shell wrapper follows.
	assert.True(t, ws.InWorkDir())
	content, readErr := os.ReadFile(breadcrumb)
	require.NoError(t, readErr)
	assert.Equal(t, "/work", string(content))
}

func TestContinueMerge(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateMerge)
	require.NoError(t, u.Continue())

	assert.Equal(t, []string{"commit", "current-branch"}, g.calls)
}

func TestContinueRebase(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateRebase)
	require.NoError(t, u.Continue())

	assert.Equal(t, []string{"continue-rebase", "current-branch"}, g.calls)
}

func TestContinueStillConflicted(t *testing.T) {
	g := &mockGit{
		commitFn: func() error {
			return &git.OperationError{Op: "commit", Reason: "unmerged paths"}
		},
	}
	ws := newWorkspace(t, "", false)

	u := New(g, ws, config.UpdateMerge)
	err := u.Continue()

	var unresolvedErr *UnresolvedConflictError
	require.True(t, errors.As(err, &unresolvedErr))
	assert.Contains(t, unresolvedErr.ResumeInstructions(), "continue-update")
}

func TestContinueInWorkDirResyncsPrimary(t *testing.T) {
	g := &mockGit{}
	ws := newWorkspace(t, "/work", true)

	u := New(g, ws, config.UpdateRebase)
	require.NoError(t, u.Continue())

	assert.False(t, ws.InWorkDir())
	assert.Contains(t, g.calls, "checkout master")
}
