package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/source"
	"github.com/dgallion1/tripgest/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripgest",
	Short: "Parse LLM travel itineraries into days, sections and items",
	Long: `tripgest turns the line-oriented itinerary text produced by a language model
("### Day N:" headers, "# Section" headers and "- item" lines) into a structured
document, printed as JSON, terminal text or HTML.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.String() + "\n")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput loads lines from path, or from stdin when path is "" or "-".
// Files go through the loader matching their extension.
func readInput(cmd *cobra.Command, path string) ([]string, error) {
	if path == "" || path == "-" {
		return itinerary.ReadLines(cmd.InOrStdin())
	}

	loader, err := source.ForFile(path, source.Options{PDFFallbackPdftotext: true})
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := loader.Load(f, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lines, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func writeLine(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format+"\n", a...)
}
