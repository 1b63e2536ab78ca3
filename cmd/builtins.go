package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tish-shell/tish/core"
)

// builtinsCmd lists the commands the shell runs in-process.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell's builtin commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range core.AllBuiltins.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
