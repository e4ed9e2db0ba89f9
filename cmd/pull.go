package cmd

import (
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the pull request's latest changes into the working tree",
	Long: `Pull the remote head of the current pull-request branch directly into the
working tree. Unlike fetch this is a live merge; conflicts are resolved as
an ordinary git merge, not through continue-update.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return appCtx.service.Pull(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
