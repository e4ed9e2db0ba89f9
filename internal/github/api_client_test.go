package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns an APIClient pointed at a local test server.
func newTestClient(t *testing.T, handler http.Handler) *APIClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ghClient := gh.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	ghClient.BaseURL = baseURL

	return newAPIClientForTest(ghClient)
}

func TestGetPullRequest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/pulls/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"number": 42,
			"title": "Fix the widget",
			"body": "Details here",
			"html_url": "https://github.com/octocat/hello-world/pull/42",
			"user": {"login": "contributor", "name": "A Contributor"},
			"head": {
				"ref": "ABC-123-fix-widget",
				"repo": {
					"clone_url": "https://github.com/contributor/hello-world.git",
					"ssh_url": "git@github.com:contributor/hello-world.git",
					"private": true
				}
			}
		}`)
	})

	client := newTestClient(t, handler)

	pr, err := client.GetPullRequest(context.Background(), Repo{Owner: "octocat", Name: "hello-world"}, 42)
	require.NoError(t, err)

	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "Fix the widget", pr.Title)
	assert.Equal(t, "contributor", pr.Author.Login)
	assert.Equal(t, "ABC-123-fix-widget", pr.Head.Ref)
	assert.True(t, pr.Head.Private)
	assert.Equal(t, "git@github.com:contributor/hello-world.git", pr.HeadGitURL())
}

func TestGetPullRequestTransportError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client := newTestClient(t, handler)

	_, err := client.GetPullRequest(context.Background(), Repo{Owner: "octocat", Name: "hello-world"}, 42)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusNotFound, transportErr.Status)
	assert.Equal(t, "get pull request", transportErr.Op)
}

func TestListOpenPullRequests(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/pulls", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"number": 1, "title": "first", "head": {"ref": "a"}},
			{"number": 2, "title": "second", "head": {"ref": "b"}}
		]`)
	})

	client := newTestClient(t, handler)

	prs, err := client.ListOpenPullRequests(context.Background(), Repo{Owner: "octocat", Name: "hello-world"})
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, 1, prs[0].Number)
	assert.Equal(t, "b", prs[1].Head.Ref)
}

func TestClosePullRequest(t *testing.T) {
	var gotState string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/octocat/hello-world/pulls/42", r.URL.Path)

		var body struct {
			State string `json:"state"`
		}
		require.NoError(t, jsonDecode(r, &body))
		gotState = body.State

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 42, "state": "closed"}`)
	})

	client := newTestClient(t, handler)

	err := client.ClosePullRequest(context.Background(), Repo{Owner: "octocat", Name: "hello-world"}, 42)
	require.NoError(t, err)
	assert.Equal(t, "closed", gotState)
}

func TestCreatePullRequest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/reviewer-org/hello-world/pulls", r.URL.Path)

		var body struct {
			Title string `json:"title"`
			Head  string `json:"head"`
			Base  string `json:"base"`
		}
		require.NoError(t, jsonDecode(r, &body))
		assert.Equal(t, "ABC-123", body.Title)
		assert.Equal(t, "octocat:pull-request-42-ABC-123", body.Head)
		assert.Equal(t, "master", body.Base)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 43, "html_url": "https://github.com/reviewer-org/hello-world/pull/43"}`)
	})

	client := newTestClient(t, handler)

	pr, err := client.CreatePullRequest(context.Background(),
		Repo{Owner: "reviewer-org", Name: "hello-world"},
		"master", "octocat:pull-request-42-ABC-123", "ABC-123", "")
	require.NoError(t, err)
	assert.Equal(t, 43, pr.Number)
	assert.Equal(t, "https://github.com/reviewer-org/hello-world/pull/43", pr.HTMLURL)
}

func TestListRepositoriesWithOpenCounts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"name": "hello-world", "owner": {"login": "octocat"}, "open_issues_count": 3},
			{"name": "quiet-repo", "owner": {"login": "octocat"}, "open_issues_count": 0},
			{"name": "busy-repo", "owner": {"login": "octocat"}, "open_issues_count": 7}
		]`)
	})

	client := newTestClient(t, handler)

	counts, err := client.ListRepositoriesWithOpenCounts(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, Repo{Owner: "octocat", Name: "hello-world"}, counts[0].Repo)
	assert.Equal(t, 3, counts[0].OpenCount)
	assert.Equal(t, "busy-repo", counts[1].Repo.Name)
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
