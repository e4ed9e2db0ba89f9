// Package lifecycle composes the branch naming rules, the VCS adapter, the
// hosting adapter and the update state machine into the user-facing
// pull-request operations.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	clog "github.com/charmbracelet/log"

	"github.com/cmckinley/gitpr/internal/branch"
	"github.com/cmckinley/gitpr/internal/config"
	"github.com/cmckinley/gitpr/internal/git"
	"github.com/cmckinley/gitpr/internal/github"
	"github.com/cmckinley/gitpr/internal/ui"
)

// NoReviewerError reports a submit with no destination repository: none was
// passed and none is configured.
type NoReviewerError struct{}

func (e *NoReviewerError) Error() string {
	return "no reviewer specified and no default reviewer configured"
}

// PullConflictError reports a pull interrupted by merge conflicts. There is
// no continuation path; the user resolves it as an ordinary merge. The
// underlying git failure is carried for inspection.
type PullConflictError struct {
	Err error
}

func (e *PullConflictError) Error() string {
	return "pull failed, there may be conflicts to resolve"
}

func (e *PullConflictError) Unwrap() error {
	return e.Err
}

// Updater is the update state machine consumed by the orchestrator.
type Updater interface {
	Run(branchName string) error
	Continue() error
}

// Service implements the pull-request lifecycle operations. All fields are
// resolved by the command layer before construction.
type Service struct {
	Config  config.Config
	Git     git.Git
	Hosting github.Hosting
	Updater Updater

	// Repo is the repository operated on; Reviewer is the submit target
	// (zero when none resolved); User is the authenticated login owning
	// pushed branches.
	Repo     github.Repo
	Reviewer github.Repo
	User     string

	Out     io.Writer
	OpenURL func(url string) error

	log *clog.Logger
}

// New fills in defaults and returns the service ready for use.
func New(s Service) *Service {
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.OpenURL == nil {
		s.OpenURL = openBrowser
	}
	s.log = clog.Default().WithPrefix("lifecycle")
	return &s
}

// Fetch retrieves a pull request and fetches its head into the deterministic
// local branch. With autoUpdate the branch is immediately updated from the
// main branch; otherwise it is checked out when auto-checkout is configured.
func (s *Service) Fetch(ctx context.Context, id int, autoUpdate bool) error {
	pr, err := s.Hosting.GetPullRequest(ctx, s.Repo, id)
	if err != nil {
		return err
	}

	name, err := s.fetchBranch(pr)
	if err != nil {
		return err
	}

	ui.PullRequestDetail(s.Out, pr)

	if autoUpdate {
		if err := s.Updater.Run(name); err != nil {
			return err
		}
	} else if s.Config.Fetch.AutoCheckout {
		if err := s.Git.Checkout(name); err != nil {
			return err
		}
	}

	s.printTrailer()
	return nil
}

// FetchAll fetches every open pull request into its own local branch. No
// branch is updated or checked out.
func (s *Service) FetchAll(ctx context.Context) error {
	prs, err := s.Hosting.ListOpenPullRequests(ctx, s.Repo)
	if err != nil {
		return err
	}

	for _, pr := range prs {
		if _, err := s.fetchBranch(pr); err != nil {
			return err
		}
		ui.PullRequestLine(s.Out, pr)
	}

	s.printTrailer()
	return nil
}

// Update runs the update state machine against a target: a pull-request ID
// (resolved via the hosting service), an explicit branch name, or, when
// empty, the current pull-request branch.
func (s *Service) Update(ctx context.Context, target string) error {
	name, err := s.resolveUpdateTarget(ctx, target)
	if err != nil {
		return err
	}

	if err := s.Updater.Run(name); err != nil {
		return err
	}

	s.printTrailer()
	return nil
}

// ContinueUpdate finishes an update interrupted by conflicts.
func (s *Service) ContinueUpdate() error {
	if err := s.Updater.Continue(); err != nil {
		return err
	}
	s.printTrailer()
	return nil
}

// Pull merges the pull request's remote head directly into the working
// tree. Conflicts surface as PullConflictError and are resolved as an
// ordinary merge, not through continue-update.
func (s *Service) Pull(ctx context.Context) error {
	_, id, err := s.requirePullRequestBranch()
	if err != nil {
		return err
	}

	pr, err := s.Hosting.GetPullRequest(ctx, s.Repo, id)
	if err != nil {
		return err
	}

	if err := s.Git.Pull(pr.HeadGitURL(), pr.Head.Ref); err != nil {
		s.log.Debug("Pull failed", "error", err)
		return &PullConflictError{Err: err}
	}

	s.printTrailer()
	return nil
}

// Merge merges the current pull-request branch into the main branch and
// deletes it. When auto-close is configured the remote pull request is
// closed as well, posting the comment first when one is given.
func (s *Service) Merge(ctx context.Context, comment string) error {
	name, id, err := s.requirePullRequestBranch()
	if err != nil {
		return err
	}

	if err := s.Git.Checkout(git.MainBranch); err != nil {
		return err
	}
	if err := s.Git.Merge(name); err != nil {
		return err
	}
	if err := s.Git.DeleteBranch(name, true); err != nil {
		return err
	}

	if s.Config.Merge.AutoClose {
		if err := s.closeRemote(ctx, id, comment); err != nil {
			return err
		}
	}

	s.printTrailer()
	return nil
}

// Close closes the remote pull request for the current branch, then checks
// out the main branch and deletes the local one. An empty comment falls back
// to the configured default comment.
func (s *Service) Close(ctx context.Context, comment string) error {
	name, id, err := s.requirePullRequestBranch()
	if err != nil {
		return err
	}

	if err := s.closeRemote(ctx, id, comment); err != nil {
		return err
	}

	if err := s.Git.Checkout(git.MainBranch); err != nil {
		return err
	}
	if err := s.Git.DeleteBranch(name, true); err != nil {
		return err
	}

	s.printTrailer()
	return nil
}

// Submit pushes the current branch to origin and opens a pull request
// against the reviewer's repository, base main, head "<user>:<branch>". The
// title defaults to the branch's issue key when none is supplied.
func (s *Service) Submit(ctx context.Context, body, title string) error {
	if s.Reviewer.IsZero() {
		return &NoReviewerError{}
	}
	if s.User == "" {
		return fmt.Errorf("github user not configured, set github.user")
	}

	name, err := s.Git.CurrentBranch()
	if err != nil {
		return err
	}

	if err := s.Git.Push("origin", name); err != nil {
		return err
	}

	if title == "" {
		title = branch.DefaultTitle(name)
	}
	head := s.User + ":" + name

	pr, err := s.Hosting.CreatePullRequest(ctx, s.Reviewer, git.MainBranch, head, title, body)
	if err != nil {
		return err
	}

	ui.PullRequestLine(s.Out, pr)
	fmt.Fprintln(s.Out, pr.HTMLURL)

	if s.Config.Submit.OpenBrowser {
		if err := s.OpenURL(pr.HTMLURL); err != nil {
			s.log.Warn("Could not open browser", "url", pr.HTMLURL, "error", err)
		}
	}

	s.printTrailer()
	return nil
}

// Open opens the pull request's page in a browser. A zero id resolves to the
// current pull-request branch.
func (s *Service) Open(ctx context.Context, id int) error {
	if id == 0 {
		_, currentID, err := s.requirePullRequestBranch()
		if err != nil {
			return err
		}
		id = currentID
	}

	pr, err := s.Hosting.GetPullRequest(ctx, s.Repo, id)
	if err != nil {
		return err
	}

	return s.OpenURL(pr.HTMLURL)
}

// Show lists open pull requests, marking those with a local branch.
func (s *Service) Show(ctx context.Context) error {
	prs, err := s.Hosting.ListOpenPullRequests(ctx, s.Repo)
	if err != nil {
		return err
	}

	local := make(map[int]bool, len(prs))
	for _, pr := range prs {
		exists, err := s.Git.BranchExists(branch.FromPullRequest(pr.Number, pr.Head.Ref))
		if err != nil {
			return err
		}
		local[pr.Number] = exists
	}

	ui.PullRequestTable(s.Out, prs, func(number int) bool { return local[number] })
	s.printTrailer()
	return nil
}

// Info lists the user's repositories with open pull requests and a total.
func (s *Service) Info(ctx context.Context, user string) error {
	counts, err := s.Hosting.ListRepositoriesWithOpenCounts(ctx, user)
	if err != nil {
		return err
	}

	ui.RepoCounts(s.Out, counts)
	return nil
}

// fetchBranch fetches the pull request's head into its deterministic local
// branch and returns the branch name.
func (s *Service) fetchBranch(pr github.PullRequest) (string, error) {
	name := branch.FromPullRequest(pr.Number, pr.Head.Ref)
	if err := s.Git.FetchBranch(pr.HeadGitURL(), pr.Head.Ref, name); err != nil {
		return "", err
	}
	return name, nil
}

// requirePullRequestBranch is the guard shared by operations that act on
// the current branch: it must carry the pull-request prefix.
func (s *Service) requirePullRequestBranch() (string, int, error) {
	name, err := s.Git.CurrentBranch()
	if err != nil {
		return "", 0, err
	}
	id, err := branch.PullRequestID(name)
	if err != nil {
		return "", 0, err
	}
	return name, id, nil
}

func (s *Service) resolveUpdateTarget(ctx context.Context, target string) (string, error) {
	if target == "" {
		name, _, err := s.requirePullRequestBranch()
		return name, err
	}

	if id, ok := parseID(target); ok {
		pr, err := s.Hosting.GetPullRequest(ctx, s.Repo, id)
		if err != nil {
			return "", err
		}
		return branch.FromPullRequest(pr.Number, pr.Head.Ref), nil
	}

	return target, nil
}

// closeRemote closes the pull request, posting the comment first. An empty
// comment falls back to the configured default; no comment is posted when
// both are empty.
func (s *Service) closeRemote(ctx context.Context, id int, comment string) error {
	if comment == "" {
		comment = s.Config.Close.DefaultComment
	}
	if comment != "" {
		if err := s.Hosting.PostComment(ctx, s.Repo, id, comment); err != nil {
			return err
		}
	}
	return s.Hosting.ClosePullRequest(ctx, s.Repo, id)
}

// printTrailer reports which branch the working tree ended up on. Failures
// to read it are not fatal; the operation already succeeded.
func (s *Service) printTrailer() {
	name, err := s.Git.CurrentBranch()
	if err != nil {
		s.log.Debug("Could not determine current branch", "error", err)
		return
	}
	ui.CurrentBranch(s.Out, name)
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// openBrowser launches the platform opener for a URL. The command is started
// and not waited on.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
