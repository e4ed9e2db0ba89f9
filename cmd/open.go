package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open a pull request in the browser",
	Long: `Open a pull request's page in the browser. With no argument the pull
request of the current branch is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}

		id := 0
		if len(args) == 1 {
			id, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid pull request id %q", args[0])
			}
		}
		return appCtx.service.Open(cmd.Context(), id)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
