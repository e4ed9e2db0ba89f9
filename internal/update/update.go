// Package update drives a pull-request branch through a merge or rebase
// against the main branch.
//
// The flow is a small state machine: an update either completes in one pass
// or stops on conflicts, leaving the repository in git's own conflict state.
// The user resolves the conflicts and invokes Continue to finish. When a
// work directory is configured the whole operation runs there, and
// completion resynchronizes the primary checkout with the result.
package update

import (
	"fmt"

	clog "github.com/charmbracelet/log"

	"github.com/cmckinley/gitpr/internal/config"
	"github.com/cmckinley/gitpr/internal/git"
	"github.com/cmckinley/gitpr/internal/workspace"
)

// ConflictError reports an update interrupted by merge/rebase conflicts.
// This is a recoverable condition, not a failure: the user resolves the
// conflicts and runs continue-update.
type ConflictError struct {
	Branch string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("updating %s from %s failed", e.Branch, git.MainBranch)
}

// ResumeInstructions tells the user how to finish the interrupted update.
func (e *ConflictError) ResumeInstructions() string {
	return "Resolve conflicts and 'git add' files, then run 'gitpr continue-update'"
}

// UnresolvedConflictError reports a continuation attempted while conflicts
// remain. The update stays interrupted; continue-update can be retried.
type UnresolvedConflictError struct{}

func (e *UnresolvedConflictError) Error() string {
	return fmt.Sprintf("updating from %s failed", git.MainBranch)
}

// ResumeInstructions tells the user how to finish the interrupted update.
func (e *UnresolvedConflictError) ResumeInstructions() string {
	return "Resolve conflicts and 'git add' files, then run 'gitpr continue-update'"
}

// Updater runs updates of pull-request branches against the main branch.
type Updater struct {
	git    git.Git
	ws     *workspace.Workspace
	method config.UpdateMethod
	log    *clog.Logger
}

// New creates an Updater.
func New(g git.Git, ws *workspace.Workspace, method config.UpdateMethod) *Updater {
	return &Updater{
		git:    g,
		ws:     ws,
		method: method,
		log:    clog.Default().WithPrefix("update"),
	}
}

// Run updates the branch from the main branch. It must be invoked from the
// primary directory; when a work directory is configured the update runs
// there instead. On conflicts the repository is left mid-merge/mid-rebase
// and a ConflictError is returned.
func (u *Updater) Run(branchName string) error {
	if u.ws.InWorkDir() {
		return &workspace.InWorkDirError{}
	}

	if u.ws.HasWorkDir() {
		if err := u.ws.EnterWorkDir(); err != nil {
			return err
		}
		// The work directory exists solely to host updates; any prior
		// partial state in it is discarded.
		if err := u.git.ResetHardAndClean(); err != nil {
			return fmt.Errorf("cleaning up work directory failed, update not performed: %w", err)
		}
	}

	if err := u.git.Checkout(branchName); err != nil {
		return fmt.Errorf("could not checkout %s, update not performed: %w", branchName, err)
	}

	u.log.Info("Updating branch", "branch", branchName, "method", u.method)

	var err error
	switch u.method {
	case config.UpdateMerge:
		err = u.git.Merge(git.MainBranch)
	case config.UpdateRebase:
		err = u.git.Rebase(git.MainBranch)
	}

	if err != nil {
		u.log.Debug("Update stopped on conflicts", "branch", branchName, "error", err)
		if u.ws.InWorkDir() {
			// Leave a breadcrumb so the caller's shell follows us into the
			// work directory for conflict resolution.
			if recordErr := u.ws.RecordDirectorySwitch(u.ws.WorkDirPath()); recordErr != nil {
				return recordErr
			}
		}
		return &ConflictError{Branch: branchName}
	}

	return u.complete(branchName)
}

// Continue finishes an update interrupted by conflicts: commit for the merge
// method, rebase --continue for the rebase method. Fails with
// UnresolvedConflictError while conflicts remain.
func (u *Updater) Continue() error {
	var err error
	switch u.method {
	case config.UpdateMerge:
		err = u.git.Commit()
	case config.UpdateRebase:
		err = u.git.ContinueRebase()
	}

	if err != nil {
		u.log.Debug("Continuation still conflicted", "error", err)
		return &UnresolvedConflictError{}
	}

	// The symbolic branch name is only reliable once the merge/rebase is
	// finished; re-derive it from HEAD.
	branchName, err := u.git.CurrentBranch()
	if err != nil {
		return err
	}

	return u.complete(branchName)
}

// complete finishes an update. When the update ran in the work directory the
// primary checkout is resynchronized with the result: the work directory is
// parked on the main branch, and the primary either hard-resets (already on
// the branch) or checks the branch out. The rebase/merge itself is never
// redone in the primary.
func (u *Updater) complete(branchName string) error {
	if !u.ws.InWorkDir() {
		return nil
	}

	if err := u.git.Checkout(git.MainBranch); err != nil {
		return fmt.Errorf("could not checkout %s branch in work directory: %w", git.MainBranch, err)
	}

	if err := u.ws.ReturnToPrimary(); err != nil {
		return err
	}

	current, err := u.git.CurrentBranch()
	if err != nil {
		return err
	}

	if current == branchName {
		if err := u.git.ResetHardAndClean(); err != nil {
			return fmt.Errorf("syncing branch %s with work directory failed: %w", branchName, err)
		}
		return nil
	}

	if err := u.git.Checkout(branchName); err != nil {
		return fmt.Errorf("could not checkout %s: %w", branchName, err)
	}
	return nil
}
