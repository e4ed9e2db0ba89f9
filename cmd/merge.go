package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [comment]",
	Short: "Merge the current pull-request branch into the main branch",
	Long: `Merge the current pull-request branch into the main branch and delete
the local branch. With merge.auto_close configured (the default) the
remote pull request is closed too, posting the comment first when one is
given.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return appCtx.service.Merge(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
