// Package ui renders pull requests and repository summaries for the
// terminal.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/cmckinley/gitpr/internal/github"
)

var (
	purple    = lipgloss.Color("99")
	gray      = lipgloss.Color("245")
	lightGray = lipgloss.Color("241")
	green     = lipgloss.Color("42")
	red       = lipgloss.Color("203")

	numberStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(gray)
	successStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Width(76).PaddingLeft(4)
)

// Error writes an error for the user. Recoverable errors carrying resume
// instructions get those rendered as guidance after the message.
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)

	var resumable interface{ ResumeInstructions() string }
	if errors.As(err, &resumable) {
		fmt.Fprintln(w, resumable.ResumeInstructions())
	}
}

// PullRequestLine writes the one-line form of a pull request: number, title
// and author.
func PullRequestLine(w io.Writer, pr github.PullRequest) {
	fmt.Fprintf(w, "%s %s %s\n",
		numberStyle.Render(fmt.Sprintf("#%d", pr.Number)),
		pr.Title,
		metaStyle.Render("("+pr.Author.Login+")"))
}

// PullRequestDetail writes the full form of a pull request: the one-line
// form, the source branch, the URL, and the body wrapped and indented.
func PullRequestDetail(w io.Writer, pr github.PullRequest) {
	PullRequestLine(w, pr)
	fmt.Fprintf(w, "    %s\n", metaStyle.Render(pr.Head.Ref))
	fmt.Fprintf(w, "    %s\n", metaStyle.Render(pr.HTMLURL))
	if body := strings.TrimSpace(pr.Body); body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bodyStyle.Render(body))
	}
}

// PullRequestTable writes open pull requests as a table. hasLocalBranch
// reports whether a local tracking branch exists for the pull request
// number; those rows get a checkmark in the Local column.
func PullRequestTable(w io.Writer, prs []github.PullRequest, hasLocalBranch func(number int) bool) {
	if len(prs) == 0 {
		fmt.Fprintln(w, "No open pull requests found.")
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddRowStyle := cellStyle.Foreground(gray)
	evenRowStyle := cellStyle.Foreground(lightGray)

	rows := make([][]string, len(prs))
	for i, pr := range prs {
		localMarker := ""
		if hasLocalBranch != nil && hasLocalBranch(pr.Number) {
			localMarker = "✓"
		}

		rows[i] = []string{
			fmt.Sprintf("%d", pr.Number),
			truncate(pr.Title, 40),
			pr.Author.Login,
			truncate(pr.Head.Ref, 30),
			localMarker,
			humanize.Time(pr.UpdatedAt),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("#", "Title", "Author", "Branch", "Local", "Updated").
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// RepoCounts writes per-repository open pull request counts followed by the
// total.
func RepoCounts(w io.Writer, counts []github.RepoCount) {
	total := 0
	for _, rc := range counts {
		total += rc.OpenCount
		fmt.Fprintf(w, "%s: %s\n", rc.Repo, pluralize(rc.OpenCount, "open pull request"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", successStyle.Render(pluralize(total, "total open pull request")))
}

// CurrentBranch writes the trailer naming the branch the working tree ends
// up on.
func CurrentBranch(w io.Writer, branch string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Current branch: %s\n", numberStyle.Render(branch))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// truncate shortens a string to maxLen runes, adding "..." when cut. Counting
// runes keeps multibyte titles and branch names valid UTF-8.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
