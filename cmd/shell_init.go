package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmckinley/gitpr/internal/shell"
)

var shellInitCmd = &cobra.Command{
	Use:   "shell-init <bash|zsh|fish>",
	Short: "Print the shell wrapper function",
	Long: `Print a shell function (gpr) that runs gitpr and then follows its
directory switches: gitpr records the directory it ends up in (work
directory on conflicts, primary on completion) in a breadcrumb file, and
the wrapper cds there after gitpr exits.

Add to your shell config:

  bash:  eval "$(gitpr shell-init bash)"
  zsh:   eval "$(gitpr shell-init zsh)"
  fish:  gitpr shell-init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := shell.NewFunctionGenerator()

		var script string
		switch args[0] {
		case "bash":
			script = gen.GenerateBash()
		case "zsh":
			script = gen.GenerateZsh()
		case "fish":
			script = gen.GenerateFish()
		default:
			return fmt.Errorf("unsupported shell %q (expected bash, zsh or fish)", args[0])
		}

		_, err := fmt.Fprint(cmd.OutOrStdout(), script)
		return err
	},
}

func init() {
	rootCmd.AddCommand(shellInitCmd)
}
