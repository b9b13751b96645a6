package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gedcom-engine/internal/gedcom"
	"github.com/pdiddy/gedcom-engine/internal/report"
	"github.com/pdiddy/gedcom-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Render a GEDCOM file as a Markdown or HTML report",
	Long: `Report runs the full pipeline over a GEDCOM file: level repair, tree
reconstruction, entity extraction, and relationship derivation. The
resulting individuals, families, events, sources, notes, multimedia,
associations, and submitter are rendered section by section.

An entity that cannot be rendered is replaced with a placeholder and a
warning on stderr; the run never aborts for a single bad entity.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	doc, err := gedcom.Load(args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.ReportConfig{
		Format:     types.OutputFormat(format),
		OutputPath: output,
	}
	return report.Write(doc, cfg, os.Stderr)
}

func init() {
	reportCmd.Flags().String("format", "markdown", "report format: markdown or html")
	reportCmd.Flags().String("output", "", "destination file for the report (default: stdout)")

	rootCmd.AddCommand(reportCmd)
}
