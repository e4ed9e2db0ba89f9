package cmd

import (
	"github.com/spf13/cobra"
)

var submitTitleFlag string

var submitCmd = &cobra.Command{
	Use:   "submit [body]",
	Short: "Submit the current branch as a pull request",
	Long: `Push the current branch to origin and open a pull request against the
reviewer's repository (the -u flag, git config github.reviewer, or the
upstream remote). The title defaults to the branch's issue key when none
is given; the optional argument becomes the pull request body.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}

		body := ""
		if len(args) == 1 {
			body = args[0]
		}
		return appCtx.service.Submit(cmd.Context(), body, submitTitleFlag)
	},
}

func init() {
	submitCmd.Flags().StringVarP(&submitTitleFlag, "title", "t", "", "Title for the pull request")
	rootCmd.AddCommand(submitCmd)
}
