// Package branch derives local branch names from pull-request metadata and
// parses pull-request IDs back out of branch names.
//
// A pull-request branch is named "pull-request-<number>", with an issue key
// appended ("pull-request-42-ABC-123") when the remote head ref starts with
// one. The name is the sole mapping between a local branch and its remote
// pull request.
package branch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prefix is the required prefix of every pull-request branch name.
const Prefix = "pull-request-"

var (
	idPattern       = regexp.MustCompile(`^pull-request-(\d+)`)
	issueKeyAtStart = regexp.MustCompile(`^[A-Z]{3,}-\d+`)
	issueKey        = regexp.MustCompile(`[A-Z]{3,}-\d+`)
)

// InvalidBranchError reports a branch name that does not identify a pull
// request. Lifecycle operations use it to refuse to run on arbitrary branches.
type InvalidBranchError struct {
	Name string
}

func (e *InvalidBranchError) Error() string {
	return fmt.Sprintf("invalid branch %q: not a pull request branch", e.Name)
}

// FromPullRequest returns the local branch name a pull request should be
// fetched into. The issue key is taken from the start of the remote head ref
// when present.
func FromPullRequest(number int, headRef string) string {
	name := fmt.Sprintf("%s%d", Prefix, number)

	if key := issueKeyAtStart.FindString(headRef); key != "" {
		name = name + "-" + key
	}

	return name
}

// PullRequestID parses the pull-request number out of a branch name.
// Returns an InvalidBranchError if the name lacks the pull-request prefix.
func PullRequestID(name string) (int, error) {
	m := idPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, &InvalidBranchError{Name: name}
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &InvalidBranchError{Name: name}
	}

	return id, nil
}

// IsPullRequestBranch reports whether name identifies a pull-request branch.
func IsPullRequestBranch(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// DefaultTitle returns the default pull-request title for a branch: the first
// embedded issue key when present, otherwise the branch name itself.
func DefaultTitle(name string) string {
	if key := issueKey.FindString(name); key != "" {
		return key
	}
	return name
}
