package cmd

import (
	"github.com/spf13/cobra"
)

var fetchAllCmd = &cobra.Command{
	Use:   "fetch-all",
	Short: "Fetch every open pull request into local branches",
	Long: `Fetch every open pull request's head into its own local branch. No
branch is updated or checked out; the working tree stays where it is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return appCtx.service.FetchAll(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(fetchAllCmd)
}
