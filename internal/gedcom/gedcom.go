// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gedcom wires the pipeline stages together: level repair, tree
// reconstruction, entity extraction, and relationship derivation.
package gedcom

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/gedcom-engine/internal/extract"
	"github.com/pdiddy/gedcom-engine/internal/graph"
	"github.com/pdiddy/gedcom-engine/internal/repair"
	"github.com/pdiddy/gedcom-engine/internal/tree"
	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// Load runs the full pipeline over the GEDCOM file at path and returns the
// typed document. A missing or unreadable input file is fatal; structural
// damage inside the file is repaired, never reported as an error.
//
// The repaired line sequence is staged through a scratch file that is
// removed before Load returns.
func Load(path string) (*types.Document, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gedcom file: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp("", "gedcom-repaired-*.ged")
	if err != nil {
		return nil, fmt.Errorf("creating scratch file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := repair.Normalize(in, tmp); err != nil {
		return nil, fmt.Errorf("repairing %s: %w", path, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding scratch file: %w", err)
	}

	return Parse(tmp)
}

// Parse runs the pipeline over raw GEDCOM text from r.
func Parse(r io.Reader) (*types.Document, error) {
	lines, err := repair.Lines(r)
	if err != nil {
		return nil, fmt.Errorf("normalizing input: %w", err)
	}
	return assemble(tree.Build(lines)), nil
}

// assemble extracts all entity types from the record forest and derives
// the relationship projection. Individuals run first so the name index is
// complete before families resolve names against it.
func assemble(roots []*types.Record) *types.Document {
	ind := extract.ExtractIndividuals(roots)
	fams := extract.ExtractFamilies(roots, ind.Names)
	g := graph.Build(fams.ByID, fams.IDs)

	doc := &types.Document{
		Header:        extract.ExtractHeader(roots),
		Individuals:   ind.ByID,
		IndividualIDs: ind.IDs,
		Families:      fams.ByID,
		FamilyIDs:     fams.IDs,
		Events:        ind.Events,
		Associations:  extract.ExtractAssociations(roots),
		Names:         ind.Names,
		Relations:     graph.Project(g, ind.IDs, ind.Names),
	}
	doc.Sources, doc.SourceIDs = extract.ExtractSources(roots)
	doc.Notes, doc.NoteIDs = extract.ExtractNotes(roots)
	doc.Objects, doc.ObjectIDs = extract.ExtractObjects(roots)
	doc.Submitters, doc.SubmitterIDs = extract.ExtractSubmitters(roots)

	return doc
}
