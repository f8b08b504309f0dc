package main

import (
	"github.com/dgallion1/tripgest/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		writeLine(cmd.OutOrStdout(), "%s", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
