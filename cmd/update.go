package cmd

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [id | branch]",
	Short: "Update a pull-request branch from the main branch",
	Long: `Update a pull-request branch by merging the main branch into it (or
rebasing onto it, per update.method). With no argument the current branch
is updated; a numeric argument is resolved to its pull-request branch, and
anything else is taken as a branch name.

When update.work_dir is configured the update runs in that secondary
checkout, leaving the primary working tree undisturbed until the result is
synced back. On conflicts the repository is left mid-merge/mid-rebase;
resolve them and run 'gitpr continue-update'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}

		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return appCtx.service.Update(cmd.Context(), target)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
