package github

import (
	"time"

	gh "github.com/google/go-github/v68/github"
)

// Author identifies who opened a pull request.
type Author struct {
	Login string
	Name  string // may be empty if the user has not set a display name
}

// HeadRef describes the source side of a pull request: the branch being
// proposed and the repository it lives in.
type HeadRef struct {
	Ref      string // remote branch name
	CloneURL string
	SSHURL   string
	Private  bool
}

// PullRequest is an immutable snapshot of a remote pull request as returned
// by one hosting-API query. Nothing is persisted locally.
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	Author    Author
	HTMLURL   string
	UpdatedAt time.Time
	Head      HeadRef
}

// HeadGitURL returns the URL to fetch the pull request's head branch from.
// Private head repositories require the SSH form.
func (pr PullRequest) HeadGitURL() string {
	if pr.Head.Private && pr.Head.SSHURL != "" {
		return pr.Head.SSHURL
	}
	return pr.Head.CloneURL
}

// fromGitHub maps a go-github pull request into the adapter's snapshot type.
func fromGitHub(pr *gh.PullRequest) PullRequest {
	head := pr.GetHead()
	headRepo := head.GetRepo()

	return PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		HTMLURL:   pr.GetHTMLURL(),
		UpdatedAt: pr.GetUpdatedAt().Time,
		Author: Author{
			Login: pr.GetUser().GetLogin(),
			Name:  pr.GetUser().GetName(),
		},
		Head: HeadRef{
			Ref:      head.GetRef(),
			CloneURL: headRepo.GetCloneURL(),
			SSHURL:   headRepo.GetSSHURL(),
			Private:  headRepo.GetPrivate(),
		},
	}
}
