package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/cmckinley/gitpr/internal/github"
)

func samplePR() github.PullRequest {
	return github.PullRequest{
		Number:    42,
		Title:     "Fix the widget",
		Body:      "The widget was broken.\n\nThis fixes it.",
		Author:    github.Author{Login: "contributor"},
		HTMLURL:   "https://github.com/octocat/hello-world/pull/42",
		UpdatedAt: time.Now().Add(-2 * time.Hour),
		Head:      github.HeadRef{Ref: "ABC-123-fix-widget"},
	}
}

func TestPullRequestLine(t *testing.T) {
	var buf bytes.Buffer
	PullRequestLine(&buf, samplePR())

	out := buf.String()
	assert.Contains(t, out, "#42")
	assert.Contains(t, out, "Fix the widget")
	assert.Contains(t, out, "(contributor)")
}

func TestPullRequestDetail(t *testing.T) {
	var buf bytes.Buffer
	PullRequestDetail(&buf, samplePR())

	out := buf.String()
	assert.Contains(t, out, "ABC-123-fix-widget")
	assert.Contains(t, out, "https://github.com/octocat/hello-world/pull/42")
	assert.Contains(t, out, "The widget was broken.")
}

func TestPullRequestDetailOmitsEmptyBody(t *testing.T) {
	pr := samplePR()
	pr.Body = "   \n  "

	var buf bytes.Buffer
	PullRequestDetail(&buf, pr)

	// Header, branch and URL lines only.
	assert.Len(t, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), 3)
}

func TestPullRequestTable(t *testing.T) {
	prs := []github.PullRequest{samplePR(), {
		Number: 7,
		Title:  "Second change",
		Author: github.Author{Login: "someone"},
		Head:   github.HeadRef{Ref: "misc-fix"},
	}}

	var buf bytes.Buffer
	PullRequestTable(&buf, prs, func(number int) bool { return number == 42 })

	out := buf.String()
	assert.Contains(t, out, "Fix the widget")
	assert.Contains(t, out, "Second change")
	assert.Contains(t, out, "✓")
}

func TestPullRequestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PullRequestTable(&buf, nil, nil)
	assert.Contains(t, buf.String(), "No open pull requests found.")
}

func TestRepoCounts(t *testing.T) {
	counts := []github.RepoCount{
		{Repo: github.Repo{Owner: "octocat", Name: "hello-world"}, OpenCount: 3},
		{Repo: github.Repo{Owner: "octocat", Name: "busy-repo"}, OpenCount: 1},
	}

	var buf bytes.Buffer
	RepoCounts(&buf, counts)

	out := buf.String()
	assert.Contains(t, out, "octocat/hello-world: 3 open pull requests")
	assert.Contains(t, out, "octocat/busy-repo: 1 open pull request\n")
	assert.Contains(t, out, "4 total open pull requests")
}

func TestCurrentBranch(t *testing.T) {
	var buf bytes.Buffer
	CurrentBranch(&buf, "pull-request-42")
	assert.Contains(t, buf.String(), "Current branch: pull-request-42")
}

type resumableError struct{}

func (e *resumableError) Error() string              { return "update stopped on conflicts" }
func (e *resumableError) ResumeInstructions() string { return "resolve and run continue-update" }

func TestErrorWithResumeInstructions(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, &resumableError{})

	out := buf.String()
	assert.Contains(t, out, "update stopped on conflicts")
	assert.Contains(t, out, "resolve and run continue-update")
}

func TestErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, assert.AnError)

	assert.Contains(t, buf.String(), assert.AnError.Error())
	assert.NotContains(t, buf.String(), "continue-update")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a long ...", truncate("a long title here", 10))
}

func TestTruncateMultibyte(t *testing.T) {
	title := "修复小部件的渲染问题和布局错误"

	got := truncate(title, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "修复小部件的渲...", got)

	// A cut below the ellipsis threshold must not split a rune either.
	assert.Equal(t, "修复", truncate(title, 2))
}
