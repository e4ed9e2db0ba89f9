package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close [comment]",
	Short: "Close the current pull request without merging",
	Long: `Close the remote pull request for the current branch, then check out the
main branch and delete the local one. The comment is posted before
closing; when none is given, close.default_comment is used if configured.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return appCtx.service.Close(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
