package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// GitCli provides git operations by executing real git commands via the git
// CLI. Queries run with a timeout and captured output; operations that can
// stop on conflicts or open an editor (merge, rebase, commit, pull) run
// attached to the terminal with no timeout.
type GitCli struct {
	log        *clog.Logger
	timeout    time.Duration
	workingDir string // "" = the process working directory
}

var _ Git = &GitCli{}

// New creates a GitCli. An empty workingDir makes commands follow the
// process working directory, which is required for the work-directory
// indirection (the process chdirs during updates).
func New(workingDir string, timeout time.Duration) *GitCli {
	return &GitCli{
		log:        clog.Default().WithPrefix("git"),
		timeout:    timeout,
		workingDir: workingDir,
	}
}

func (g *GitCli) execute(args ...string) (string, error) {
	g.log.Debug("Executing git command", "cmd", "git", "args", args, "workingDir", g.workingDir)

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workingDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			g.log.Warn("git command timed out", "args", args, "timeout", g.timeout)
			return "", &OperationError{Op: args[0], Reason: fmt.Sprintf("timed out after %s", g.timeout)}
		}
		g.log.Warn("Git command failed", "args", args, "stderr", stderr.String(), "error", err)
		return "", &OperationError{Op: args[0], Reason: strings.TrimSpace(stderr.String())}
	}

	output := strings.TrimSpace(stdout.String())
	g.log.Debug("Git command succeeded", "args", args, "output", output)
	return output, nil
}

// executeInteractive runs a git command wired to the caller's terminal. Used
// for commands that may open an editor or stop midway on conflicts; their
// stderr belongs on the user's screen, not in an error message.
func (g *GitCli) executeInteractive(args ...string) error {
	g.log.Debug("Executing interactive git command", "cmd", "git", "args", args, "workingDir", g.workingDir)

	cmd := exec.Command("git", args...)
	cmd.Dir = g.workingDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		g.log.Debug("Interactive git command exited nonzero", "args", args, "error", err)
		return &OperationError{Op: args[0], Reason: err.Error()}
	}
	return nil
}

func (g *GitCli) CurrentBranch() (string, error) {
	output, err := g.execute("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

func (g *GitCli) BranchExists(name string) (bool, error) {
	_, err := g.execute("rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	if err == nil {
		return true, nil
	}

	var opErr *OperationError
	if errors.As(err, &opErr) && opErr.Reason == "" {
		// rev-parse --verify --quiet exits 1 with no output for a missing ref.
		return false, nil
	}
	return false, err
}

func (g *GitCli) Checkout(branch string) error {
	g.log.Info("Checking out branch", "branch", branch)
	_, err := g.execute("checkout", branch)
	return err
}

func (g *GitCli) DeleteBranch(branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	g.log.Info("Deleting branch", "branch", branch, "force", force)
	_, err := g.execute("branch", flag, branch)
	return err
}

func (g *GitCli) FetchBranch(remoteURL, remoteRef, localBranch string) error {
	g.log.Info("Fetching remote branch", "remote", remoteURL, "remoteRef", remoteRef, "localBranch", localBranch)
	refSpec := remoteRef + ":" + localBranch
	_, err := g.execute("fetch", remoteURL, refSpec)
	return err
}

func (g *GitCli) Pull(remoteURL, remoteRef string) error {
	g.log.Info("Pulling remote branch", "remote", remoteURL, "remoteRef", remoteRef)
	return g.executeInteractive("pull", remoteURL, remoteRef)
}

func (g *GitCli) Merge(ref string) error {
	g.log.Info("Merging into current branch", "ref", ref)
	return g.executeInteractive("merge", ref)
}

func (g *GitCli) Rebase(onto string) error {
	g.log.Info("Rebasing current branch", "onto", onto)
	return g.executeInteractive("rebase", onto)
}

func (g *GitCli) Commit() error {
	return g.executeInteractive("commit")
}

func (g *GitCli) ContinueRebase() error {
	return g.executeInteractive("rebase", "--continue")
}

func (g *GitCli) ResetHardAndClean() error {
	g.log.Info("Resetting working tree")
	if _, err := g.execute("reset", "--hard"); err != nil {
		return err
	}
	_, err := g.execute("clean", "-f")
	return err
}

func (g *GitCli) Push(remote, branch string) error {
	g.log.Info("Pushing branch", "remote", remote, "branch", branch)
	return g.executeInteractive("push", remote, branch)
}

func (g *GitCli) TopLevel() (string, error) {
	output, err := g.execute("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get repository root: %w", err)
	}
	return output, nil
}

func (g *GitCli) ConfigIsSymlink() (bool, error) {
	root, err := g.TopLevel()
	if err != nil {
		return false, err
	}

	info, err := os.Lstat(filepath.Join(root, ".git", "config"))
	if err != nil {
		return false, fmt.Errorf("failed to inspect .git/config: %w", err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

func (g *GitCli) ConfigSymlinkTarget() (string, error) {
	root, err := g.TopLevel()
	if err != nil {
		return "", err
	}

	target, err := os.Readlink(filepath.Join(root, ".git", "config"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve .git/config symlink: %w", err)
	}
	return target, nil
}

func (g *GitCli) RemoteURL(name string) (string, error) {
	output, err := g.execute("remote", "get-url", name)
	if err != nil {
		var opErr *OperationError
		if errors.As(err, &opErr) && strings.Contains(opErr.Reason, "No such remote") {
			return "", nil
		}
		return "", err
	}
	return output, nil
}

func (g *GitCli) ConfigValues(pattern string) (map[string]string, error) {
	output, err := g.execute("config", "--get-regexp", pattern)
	if err != nil {
		// git config exits 1 when nothing matches.
		var opErr *OperationError
		if errors.As(err, &opErr) && opErr.Reason == "" {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return parseConfigList(output), nil
}

// parseConfigList parses `git config --get-regexp` output, one
// "name value" pair per line. Values may be empty.
func parseConfigList(output string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		name, value, _ := strings.Cut(line, " ")
		values[name] = value
	}
	return values
}
