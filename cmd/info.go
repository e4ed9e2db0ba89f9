package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [user]",
	Short: "Show open pull request counts across a user's repositories",
	Long: `List a user's repositories that have open pull requests, with per-repo
counts and a total. The user defaults to git config github.user.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}

		user := appCtx.cfg.GitHub.User
		if len(args) == 1 {
			user = args[0]
		}
		if user == "" {
			return fmt.Errorf("no user given and github.user not configured")
		}
		return appCtx.service.Info(cmd.Context(), user)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
