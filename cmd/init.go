package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tish-shell/tish/core/config"
)

// initCmd creates the configuration directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the tish configuration directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		_, err := config.Initialize(cfgPath, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
