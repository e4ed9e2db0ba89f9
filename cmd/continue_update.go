package cmd

import (
	"github.com/spf13/cobra"
)

var continueUpdateCmd = &cobra.Command{
	Use:     "continue-update",
	Aliases: []string{"cu"},
	Short:   "Finish an update interrupted by conflicts",
	Long: `Finish an update that stopped on conflicts: commits the resolution (merge
method) or continues the rebase (rebase method), then syncs the primary
working tree when the update ran in a work directory.

Conflicted files must be resolved and staged with 'git add' first.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return appCtx.service.ContinueUpdate()
	},
}

func init() {
	rootCmd.AddCommand(continueUpdateCmd)
}
