// Package cmd is the cobra command surface of gitpr.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cmckinley/gitpr/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "n/a"

var (
	repoFlag     string
	reviewerFlag string
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "gitpr",
	Short: "Pull-request workflow automation",
	Long: `gitpr automates pull-request workflows on top of git and GitHub:
fetch pull requests into deterministic local branches, keep them updated
against the main branch (optionally in a secondary work directory), and
merge, close or submit them.

With no arguments, lists open pull requests. A bare numeric argument
fetches that pull request:

  gitpr 42    is shorthand for    gitpr fetch 42`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			clog.SetLevel(clog.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runShow(cmd, args)
		}
		if id, err := strconv.Atoi(args[0]); err == nil && len(args) == 1 {
			return fetchPullRequest(cmd, id, nil)
		}
		return fmt.Errorf("unknown command %q, see 'gitpr help'", args[0])
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", "", "Repository to operate on: owner/name or a remote name")
	rootCmd.PersistentFlags().StringVarP(&reviewerFlag, "reviewer", "u", "", "Reviewer pull requests are submitted to: owner or owner/name")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
}

// Execute runs the root command, rendering the error taxonomy for the user.
// Conflict errors come with resume guidance; all errors exit nonzero.
func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	err := rootCmd.Execute()
	if err != nil {
		ui.Error(os.Stderr, err)
	}
	return err
}
