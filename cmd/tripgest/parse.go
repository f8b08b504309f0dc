package main

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/render"
	"github.com/spf13/cobra"
)

var (
	parseFormat string
	parseReport bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Build an itinerary from a file or stdin",
	Long: `Build an itinerary from a text, markdown, JSON, HTML, DOCX or PDF file,
or from stdin when no file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readInput(cmd, inputArg(args))
		if err != nil {
			return err
		}
		doc, rep := itinerary.Parse(lines)

		out := cmd.OutOrStdout()
		r := render.New()
		switch parseFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(doc)
		case "text":
			err = r.WriteText(out, doc)
		case "html":
			if err = r.WriteHTML(out, doc); err == nil {
				_, err = fmt.Fprintln(out)
			}
		default:
			return fmt.Errorf("unknown format %q (want json, text or html)", parseFormat)
		}
		if err != nil {
			return err
		}

		if parseReport {
			stats := doc.Stats()
			errOut := cmd.ErrOrStderr()
			writeLine(errOut, "lines=%d blank=%d days=%d sections=%d items=%d",
				rep.Lines, rep.BlankLines, stats.Days, stats.Sections, stats.Items)
			writeLine(errOut, "synthetic_days=%d orphan_lines=%d orphan_sections=%d",
				rep.SyntheticDays, rep.OrphanLines, rep.OrphanSections)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "Output format: json, text or html")
	parseCmd.Flags().BoolVar(&parseReport, "report", false, "Print parse statistics to stderr")
	rootCmd.AddCommand(parseCmd)
}
