// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := types.IndexConfig{
		DataDir:    tmpDir,
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func testDocument() *types.Document {
	return &types.Document{
		Individuals: map[string]*types.Individual{
			"@I1@": {ID: "@I1@", Name: "John Doe", Gender: "M", BirthPlace: "Boston, MA", Notes: []string{"fought at sea"}},
			"@I2@": {ID: "@I2@", Name: "Jane Roe", Gender: "F", DeathPlace: "Salem, MA"},
			"@I3@": {ID: "@I3@", Name: "Jimmy Doe", Gender: "M"},
		},
		IndividualIDs: []string{"@I1@", "@I2@", "@I3@"},
		Families: map[string]*types.Family{
			"@F1@": {
				ID: "@F1@", HusbandID: "@I1@", HusbandName: "John Doe",
				WifeID: "@I2@", WifeName: "Jane Roe",
				ChildIDs: []string{"@I3@"},
				Marriage: types.FamilyEvent{Date: "1 JUN 1925"},
			},
		},
		FamilyIDs: []string{"@F1@"},
		Events: []types.Event{
			{OwnerID: "@I1@", OwnerType: "INDI", Type: "BAPM", Date: "5 MAY 1900"},
		},
		Relations: map[string]types.Relations{
			"@I1@": {SpouseIDs: "@I2@", SpouseNames: "Jane Roe", ChildIDs: "@I3@", ChildNames: "Jimmy Doe"},
			"@I2@": {SpouseIDs: "@I1@", SpouseNames: "John Doe", ChildIDs: "@I3@", ChildNames: "Jimmy Doe"},
			"@I3@": {FatherID: "@I1@", FatherName: "John Doe", MotherID: "@I2@", MotherName: "Jane Roe"},
		},
	}
}

func ingest(t *testing.T, s *Store) IngestSummary {
	t.Helper()
	summary, err := s.Ingest(context.Background(), testDocument(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- tests ---

func TestIngest(t *testing.T) {
	s, _ := testSetup(t)
	summary := ingest(t, s)

	if summary.Individuals != 3 || summary.Families != 1 || summary.Events != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestIngestIsIdempotentRefresh(t *testing.T) {
	s, _ := testSetup(t)
	ingest(t, s)
	summary := ingest(t, s)

	if summary.Individuals != 3 {
		t.Errorf("re-ingest individuals = %d, want 3", summary.Individuals)
	}

	results, err := s.Retrieve(context.Background(), QueryOptions{Gender: "M"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("male individuals after refresh = %d, want 2", len(results))
	}
}

func TestRetrieveFullText(t *testing.T) {
	s, _ := testSetup(t)
	ingest(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{Query: "Jane"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "@I2@" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].SpouseNames != "John Doe" {
		t.Errorf("SpouseNames = %q", results[0].SpouseNames)
	}

	// Notes are searchable too.
	results, err = s.Retrieve(context.Background(), QueryOptions{Query: "sea"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "@I1@" {
		t.Fatalf("note search results = %+v", results)
	}
	if len(results[0].Notes) != 1 || results[0].Notes[0] != "fought at sea" {
		t.Errorf("Notes = %v", results[0].Notes)
	}
}

func TestRetrieveFilters(t *testing.T) {
	s, _ := testSetup(t)
	ingest(t, s)

	tests := []struct {
		name    string
		opts    QueryOptions
		wantIDs []string
	}{
		{
			name:    "gender filter",
			opts:    QueryOptions{Gender: "F"},
			wantIDs: []string{"@I2@"},
		},
		{
			name:    "place filter matches birth or death",
			opts:    QueryOptions{Place: "Salem"},
			wantIDs: []string{"@I2@"},
		},
		{
			name:    "query plus gender",
			opts:    QueryOptions{Query: "Doe", Gender: "M"},
			wantIDs: []string{"@I1@", "@I3@"},
		},
		{
			name:    "limit",
			opts:    QueryOptions{Gender: "M", MaxResults: 1},
			wantIDs: []string{"@I3@"}, // name sort puts Jimmy Doe first
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			got := make(map[string]bool)
			for _, r := range results {
				got[r.ID] = true
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("results = %d, want %d", len(results), len(tt.wantIDs))
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("missing %s in results", id)
				}
			}
		})
	}
}

func TestExportYAML(t *testing.T) {
	s, tmpDir := testSetup(t)
	ingest(t, s)

	if err := s.ExportYAML(context.Background(), QueryOptions{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, indexDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var results []QueryResult
	if err := yaml.Unmarshal(data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("exported = %d, want 3", len(results))
	}
}

func TestExportJSON(t *testing.T) {
	s, tmpDir := testSetup(t)
	ingest(t, s)

	if err := s.ExportJSON(context.Background(), QueryOptions{Gender: "M"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	var results []QueryResult
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("exported = %d, want 2", len(results))
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("zero options must be empty")
	}
	if (QueryOptions{Gender: "M"}).IsEmpty() {
		t.Error("gender filter is not empty")
	}
}
