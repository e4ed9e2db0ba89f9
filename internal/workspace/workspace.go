// Package workspace tracks which checkout the process is operating in: the
// primary working directory or an optional secondary work directory used to
// run long updates without disturbing the primary tree.
//
// A work-directory checkout is marked by its .git/config being a symbolic
// link into the primary repository. Every directory switch is recorded in a
// breadcrumb file so a parent-shell wrapper can follow the process after it
// exits.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// DefaultBreadcrumbPath is the well-known file holding the last directory
// switched into. External shell wrappers depend on this exact path.
const DefaultBreadcrumbPath = "/tmp/git-pull-request-chdir"

// InWorkDirError reports an operation that must start from the primary
// directory being attempted inside the work directory.
type InWorkDirError struct{}

func (e *InWorkDirError) Error() string {
	return "cannot perform an update from within the work directory"
}

// Inspector is the subset of VCS operations needed to detect the
// work-directory indirection.
type Inspector interface {
	TopLevel() (string, error)
	ConfigIsSymlink() (bool, error)
	ConfigSymlinkTarget() (string, error)
}

// Workspace records the mode the process started in and performs directory
// switches. The mode is resolved once at startup, not re-derived per call.
type Workspace struct {
	workDir    string // configured secondary checkout, "" when not configured
	primary    string // primary checkout root
	inWorkDir  bool
	breadcrumb string
	chdir      func(string) error
	log        *clog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithBreadcrumbPath overrides the breadcrumb file location.
func WithBreadcrumbPath(path string) Option {
	return func(w *Workspace) { w.breadcrumb = path }
}

// WithChdir overrides the directory-switch primitive.
func WithChdir(fn func(string) error) Option {
	return func(w *Workspace) { w.chdir = fn }
}

// New creates a Workspace with an already-resolved mode.
func New(workDir, primary string, inWorkDir bool, opts ...Option) *Workspace {
	w := &Workspace{
		workDir:    workDir,
		primary:    primary,
		inWorkDir:  inWorkDir,
		breadcrumb: DefaultBreadcrumbPath,
		chdir:      os.Chdir,
		log:        clog.Default().WithPrefix("workspace"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Detect resolves the workspace mode from configuration and the filesystem.
// When the current checkout's .git/config is a symlink the process started
// inside a work directory; the primary checkout is two levels up from the
// symlink target (<primary>/.git/config).
func Detect(workDir string, vcs Inspector, opts ...Option) (*Workspace, error) {
	isLink, err := vcs.ConfigIsSymlink()
	if err != nil {
		return nil, err
	}

	if isLink {
		target, err := vcs.ConfigSymlinkTarget()
		if err != nil {
			return nil, err
		}
		primary := filepath.Dir(filepath.Dir(target))
		return New(workDir, primary, true, opts...), nil
	}

	primary, err := vcs.TopLevel()
	if err != nil {
		return nil, err
	}
	return New(workDir, primary, false, opts...), nil
}

// HasWorkDir reports whether a secondary work directory is configured.
func (w *Workspace) HasWorkDir() bool {
	return w.workDir != ""
}

// InWorkDir reports whether the process is currently inside the work
// directory.
func (w *Workspace) InWorkDir() bool {
	return w.inWorkDir
}

// WorkDirPath returns the configured work directory path.
func (w *Workspace) WorkDirPath() string {
	return w.workDir
}

// PrimaryPath returns the primary checkout root.
func (w *Workspace) PrimaryPath() string {
	return w.primary
}

// EnterWorkDir switches the process into the work directory.
func (w *Workspace) EnterWorkDir() error {
	w.log.Debug("Switching to work directory", "path", w.workDir)
	if err := w.chdir(w.workDir); err != nil {
		return fmt.Errorf("failed to switch to work directory %s: %w", w.workDir, err)
	}
	w.inWorkDir = true
	return nil
}

// ReturnToPrimary switches the process back to the primary directory and
// records the switch for the parent shell.
func (w *Workspace) ReturnToPrimary() error {
	w.log.Debug("Switching to primary directory", "path", w.primary)
	if err := w.chdir(w.primary); err != nil {
		return fmt.Errorf("failed to switch to primary directory %s: %w", w.primary, err)
	}
	w.inWorkDir = false
	return w.RecordDirectorySwitch(w.primary)
}

// RecordDirectorySwitch writes the breadcrumb file consumed by the shell
// wrapper. The file is truncated and overwritten on every write; it only
// ever holds the most recent path.
func (w *Workspace) RecordDirectorySwitch(path string) error {
	if err := os.WriteFile(w.breadcrumb, []byte(path), 0o644); err != nil {
		return fmt.Errorf("failed to record directory switch: %w", err)
	}
	return nil
}
