// Package github is the hosting-API adapter: a thin contract over remote
// pull-request queries and mutations, implemented against the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Repo identifies a repository on the hosting service.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the repo is unset.
func (r Repo) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// ParseRepo parses an "owner/name" string.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, fmt.Errorf("invalid repository %q (expected owner/name)", s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// remoteURLPattern matches the owner/name portion of github.com remote URLs,
// both SSH (git@github.com:owner/name.git) and HTTPS forms.
var remoteURLPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/(.+?)(?:\.git)?$`)

// RepoFromRemoteURL extracts the repository from a github.com remote URL.
func RepoFromRemoteURL(url string) (Repo, bool) {
	m := remoteURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return Repo{}, false
	}
	return Repo{Owner: m[1], Name: m[2]}, true
}

// RepoCount pairs a repository with its number of open pull requests.
type RepoCount struct {
	Repo      Repo
	OpenCount int
}

// TransportError reports a failed network exchange with the hosting service.
// It is fatal for the enclosing operation; nothing is retried.
type TransportError struct {
	Op     string
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("github %s failed (HTTP %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("github %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EmptyResponseError reports a successful exchange whose body was missing or
// unusable.
type EmptyResponseError struct {
	Op string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("github %s returned an empty response", e.Op)
}

// Hosting defines the remote pull-request operations gitpr needs.
type Hosting interface {
	// GetPullRequest returns a single pull request by number.
	GetPullRequest(ctx context.Context, repo Repo, number int) (PullRequest, error)

	// ListOpenPullRequests returns all open pull requests on the repository.
	ListOpenPullRequests(ctx context.Context, repo Repo) ([]PullRequest, error)

	// ClosePullRequest closes the pull request on the hosting service.
	ClosePullRequest(ctx context.Context, repo Repo, number int) error

	// PostComment posts a comment on the pull request.
	PostComment(ctx context.Context, repo Repo, number int, body string) error

	// CreatePullRequest opens a pull request of head against base on repo.
	// head uses the "owner:branch" form for cross-repository requests.
	CreatePullRequest(ctx context.Context, repo Repo, base, head, title, body string) (PullRequest, error)

	// ListRepositoriesWithOpenCounts returns the user's repositories that
	// have open pull requests, with their counts.
	ListRepositoriesWithOpenCounts(ctx context.Context, user string) ([]RepoCount, error)
}
