package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cmckinley/gitpr/internal/config"
	"github.com/cmckinley/gitpr/internal/git"
	"github.com/cmckinley/gitpr/internal/github"
	"github.com/cmckinley/gitpr/internal/lifecycle"
	"github.com/cmckinley/gitpr/internal/update"
	"github.com/cmckinley/gitpr/internal/workspace"
)

// gitConfigPattern selects the git config entries gitpr reads: its own
// pull-request.* namespace plus the github.* identity keys.
const gitConfigPattern = `^(pull-request|github)\.`

// appContext holds the wired-up collaborators for one command invocation.
type appContext struct {
	cfg     config.Config
	service *lifecycle.Service
}

// newAppContext loads configuration and wires the service. The git client is
// created with an empty working directory so it follows the process as the
// workspace switches between the primary and work directories.
func newAppContext() (*appContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	bootstrap := git.New("", config.DefaultConfig().Git.Timeout)
	repoRoot, err := bootstrap.TopLevel()
	if err != nil {
		return nil, fmt.Errorf("gitpr must be run inside a git repository: %w", err)
	}

	gitValues, err := bootstrap.ConfigValues(gitConfigPattern)
	if err != nil {
		return nil, err
	}

	loadResult, err := config.NewDefaultLoader().Load(config.ConfigPaths(cwd, repoRoot), gitValues)
	if err != nil {
		return nil, err
	}
	cfg := loadResult.Config

	gitClient := git.New("", cfg.Git.Timeout)

	repo, err := resolveRepo(gitClient, cfg)
	if err != nil {
		return nil, err
	}
	reviewer, err := resolveReviewer(gitClient, cfg, repo)
	if err != nil {
		return nil, err
	}

	token := cfg.GitHub.Token
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		token = env
	}

	ws, err := workspace.Detect(cfg.Update.WorkDir, gitClient)
	if err != nil {
		return nil, err
	}

	service := lifecycle.New(lifecycle.Service{
		Config:   cfg,
		Git:      gitClient,
		Hosting:  github.NewAPIClient(token),
		Updater:  update.New(gitClient, ws, cfg.Update.Method),
		Repo:     repo,
		Reviewer: reviewer,
		User:     cfg.GitHub.User,
	})

	return &appContext{
		cfg:     cfg,
		service: service,
	}, nil
}

// resolveRepo determines the repository to operate on: the -r flag (either
// owner/name or a remote name), then git config github.repo, then the origin
// remote's URL.
func resolveRepo(g git.Git, cfg config.Config) (github.Repo, error) {
	if repoFlag != "" {
		if strings.Contains(repoFlag, "/") {
			return github.ParseRepo(repoFlag)
		}
		return repoFromRemote(g, repoFlag)
	}

	if cfg.GitHub.Repo != "" {
		return github.ParseRepo(cfg.GitHub.Repo)
	}

	return repoFromRemote(g, "origin")
}

// resolveReviewer determines the submit target: the -u flag or git config
// github.reviewer (an owner, repository name defaulting to the working
// repository's), then the upstream remote. A zero repo means no reviewer;
// only submit treats that as an error.
func resolveReviewer(g git.Git, cfg config.Config, repo github.Repo) (github.Repo, error) {
	candidate := reviewerFlag
	if candidate == "" {
		candidate = cfg.GitHub.Reviewer
	}
	if candidate != "" {
		if strings.Contains(candidate, "/") {
			return github.ParseRepo(candidate)
		}
		return github.Repo{Owner: candidate, Name: repo.Name}, nil
	}

	url, err := g.RemoteURL("upstream")
	if err != nil {
		return github.Repo{}, err
	}
	if reviewer, ok := github.RepoFromRemoteURL(url); ok {
		return reviewer, nil
	}
	return github.Repo{}, nil
}

func repoFromRemote(g git.Git, remote string) (github.Repo, error) {
	url, err := g.RemoteURL(remote)
	if err != nil {
		return github.Repo{}, err
	}
	if url == "" {
		return github.Repo{}, fmt.Errorf("could not determine repository: no %q remote and no github.repo configured", remote)
	}
	repo, ok := github.RepoFromRemoteURL(url)
	if !ok {
		return github.Repo{}, fmt.Errorf("remote %q is not a github.com repository: %s", remote, url)
	}
	return repo, nil
}
