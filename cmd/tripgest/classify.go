package main

import (
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Print the tag assigned to each input line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readInput(cmd, inputArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, line := range lines {
			writeLine(out, "%s\t%s", itinerary.Classify(line), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
