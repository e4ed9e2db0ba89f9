package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List open pull requests",
	Long: `List open pull requests for the repository. Pull requests that already
have a local branch are marked in the Local column.

This is also the default command: running gitpr with no arguments shows
the open pull requests.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	return appCtx.service.Show(cmd.Context())
}
