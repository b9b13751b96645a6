package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gedcom-engine/internal/repair"
)

var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Repair GEDCOM level numbering",
	Long: `Repair reads a GEDCOM file and corrects malformed level numbers:
non-numeric tokens, negative levels, and jumps of more than one level
are substituted or clamped so the output nests consistently. Blank
lines are dropped; all other tokens pass through unchanged.

The repaired line sequence is written to --output, or stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func runRepair(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening gedcom file: %w", err)
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	outPath, _ := cmd.Flags().GetString("output")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return repair.Normalize(in, out)
}

func init() {
	repairCmd.Flags().String("output", "", "destination file for the repaired sequence (default: stdout)")

	rootCmd.AddCommand(repairCmd)
}
