package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	fetchUpdateFlag   bool
	fetchNoUpdateFlag bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Fetch a pull request into a local branch",
	Long: `Fetch a pull request's head into a deterministic local branch named
pull-request-<id>, suffixed with the issue key when the source branch
carries one (e.g. pull-request-42-ABC-123).

With --update (or fetch.auto_update configured), the branch is immediately
updated against the main branch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pull request id %q", args[0])
		}

		var override *bool
		if cmd.Flags().Changed("update") {
			override = &fetchUpdateFlag
		}
		if fetchNoUpdateFlag {
			f := false
			override = &f
		}
		return fetchPullRequest(cmd, id, override)
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchUpdateFlag, "update", false, "Update the branch after fetching")
	fetchCmd.Flags().BoolVar(&fetchNoUpdateFlag, "no-update", false, "Do not update the branch, even if configured to")
	rootCmd.AddCommand(fetchCmd)
}

// fetchPullRequest runs the fetch operation. autoUpdate nil means use the
// configured fetch.auto_update; the bare-ID shorthand (gitpr 42) goes
// through here too.
func fetchPullRequest(cmd *cobra.Command, id int, autoUpdate *bool) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}

	update := appCtx.cfg.Fetch.AutoUpdate
	if autoUpdate != nil {
		update = *autoUpdate
	}
	return appCtx.service.Fetch(cmd.Context(), id, update)
}
