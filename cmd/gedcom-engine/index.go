// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gedcom-engine/internal/gedcom"
	"github.com/pdiddy/gedcom-engine/internal/store"
	"github.com/pdiddy/gedcom-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite index (store, retrieve, export)",
	Long: `Index manages a local SQLite database built from the extracted entities
of a GEDCOM file. Use subcommands to ingest a file, query individuals,
or export the index.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store [file]",
	Short: "Ingest a GEDCOM file into the index",
	Long: `Store runs the pipeline over a GEDCOM file and replaces the index
contents with its individuals, families, and events. Names and notes
are indexed for full-text search.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	doc, err := gedcom.Load(args[0])
	if err != nil {
		return err
	}

	s, err := store.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Ingest(context.Background(), doc, os.Stdout)
	return err
}

// --- retrieve subcommand ---

var indexRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query indexed individuals with full-text search and filters",
	Long: `Retrieve searches indexed individuals using FTS5 full-text search over
names and notes, structured filters (gender, place), or a combination.
Results include the derived parent, spouse, and children names.`,
	RunE: runIndexRetrieve,
}

func runIndexRetrieve(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --gender, or --place")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-30s  %-6s  %-16s  %-20s  %s\n",
		"ID", "Name", "Gender", "Born", "Birth Place", "Spouses")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range results {
		name := r.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		place := r.BirthPlace
		if len(place) > 20 {
			place = place[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-8s  %-30s  %-6s  %-16s  %-20s  %s\n",
			r.ID, name, r.Gender, r.BirthDate, place, r.SpouseNames)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the index to YAML or JSON",
	Long: `Export writes the indexed individuals (or a filtered subset) to
index/export.yaml or index/export.json under the data directory.
Supports the same filter flags as retrieve for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := store.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.yaml")
	case "json":
		if err := s.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = "."
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.IndexConfig{
		DataDir:    dataDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	gender, _ := cmd.Flags().GetString("gender")
	place, _ := cmd.Flags().GetString("place")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Gender:     gender,
		Place:      place,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("data-dir", ".", "base directory for the index (contains index/)")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	indexRetrieveCmd.Flags().String("query", "", "full-text search query over names and notes")
	indexRetrieveCmd.Flags().String("gender", "", "filter by gender code (e.g. M, F)")
	indexRetrieveCmd.Flags().String("place", "", "filter by birth or death place substring")
	indexRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().String("gender", "", "filter by gender for partial export")
	indexExportCmd.Flags().String("place", "", "filter by place for partial export")
	indexExportCmd.Flags().Int("limit", 0, "maximum individuals to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexRetrieveCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
