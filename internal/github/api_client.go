package github

import (
	"context"
	"net/http"

	clog "github.com/charmbracelet/log"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// APIClient implements Hosting using the GitHub REST API.
type APIClient struct {
	client *gh.Client
	log    *clog.Logger
}

var _ Hosting = &APIClient{}

// NewAPIClient creates a GitHub API client. With an empty token requests are
// unauthenticated, which is enough for read-only operations on public
// repositories.
func NewAPIClient(token string) *APIClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &APIClient{
		client: gh.NewClient(httpClient),
		log:    clog.Default().WithPrefix("github"),
	}
}

// newAPIClientForTest builds a client against a test server base URL.
func newAPIClientForTest(client *gh.Client) *APIClient {
	return &APIClient{
		client: client,
		log:    clog.Default().WithPrefix("github"),
	}
}

// toTransportError folds a go-github failure into the adapter's taxonomy.
func toTransportError(op string, resp *gh.Response, err error) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &TransportError{Op: op, Status: status, Err: err}
}

func (c *APIClient) GetPullRequest(ctx context.Context, repo Repo, number int) (PullRequest, error) {
	c.log.Debug("Getting pull request", "repo", repo.String(), "number", number)

	pr, resp, err := c.client.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return PullRequest{}, toTransportError("get pull request", resp, err)
	}
	if pr == nil {
		return PullRequest{}, &EmptyResponseError{Op: "get pull request"}
	}

	return fromGitHub(pr), nil
}

func (c *APIClient) ListOpenPullRequests(ctx context.Context, repo Repo) ([]PullRequest, error) {
	c.log.Debug("Listing open pull requests", "repo", repo.String())

	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var all []PullRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, toTransportError("list pull requests", resp, err)
		}

		for _, pr := range prs {
			all = append(all, fromGitHub(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (c *APIClient) ClosePullRequest(ctx context.Context, repo Repo, number int) error {
	c.log.Debug("Closing pull request", "repo", repo.String(), "number", number)

	closed := &gh.PullRequest{State: gh.Ptr("closed")}
	_, resp, err := c.client.PullRequests.Edit(ctx, repo.Owner, repo.Name, number, closed)
	if err != nil {
		return toTransportError("close pull request", resp, err)
	}
	return nil
}

func (c *APIClient) PostComment(ctx context.Context, repo Repo, number int, body string) error {
	c.log.Debug("Posting comment", "repo", repo.String(), "number", number)

	comment := &gh.IssueComment{Body: gh.Ptr(body)}
	_, resp, err := c.client.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, comment)
	if err != nil {
		return toTransportError("post comment", resp, err)
	}
	return nil
}

func (c *APIClient) CreatePullRequest(ctx context.Context, repo Repo, base, head, title, body string) (PullRequest, error) {
	c.log.Debug("Creating pull request", "repo", repo.String(), "base", base, "head", head)

	newPR := &gh.NewPullRequest{
		Title: gh.Ptr(title),
		Head:  gh.Ptr(head),
		Base:  gh.Ptr(base),
		Body:  gh.Ptr(body),
	}

	pr, resp, err := c.client.PullRequests.Create(ctx, repo.Owner, repo.Name, newPR)
	if err != nil {
		return PullRequest{}, toTransportError("create pull request", resp, err)
	}
	if pr == nil {
		return PullRequest{}, &EmptyResponseError{Op: "create pull request"}
	}

	return fromGitHub(pr), nil
}

func (c *APIClient) ListRepositoriesWithOpenCounts(ctx context.Context, user string) ([]RepoCount, error) {
	c.log.Debug("Listing repositories", "user", user)

	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var counts []RepoCount
	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, toTransportError("list repositories", resp, err)
		}

		for _, r := range repos {
			if r.GetOpenIssuesCount() == 0 {
				continue
			}
			counts = append(counts, RepoCount{
				Repo:      Repo{Owner: r.GetOwner().GetLogin(), Name: r.GetName()},
				OpenCount: r.GetOpenIssuesCount(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return counts, nil
}
