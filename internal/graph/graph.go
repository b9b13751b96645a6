// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph derives the relationship graph from extracted families:
// child-to-parents, spouse, and children maps, plus the per-individual
// Relations projection handed to presentation.
package graph

import (
	"strings"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// Parents pairs the husband and wife ids of the family a child belongs to.
type Parents struct {
	FatherID string
	MotherID string
}

// Graph holds the derived relationship maps. Spouse and children lists are
// never deduplicated: a couple with several family records, or sequential
// marriages, contributes every entry in family processing order.
type Graph struct {
	ChildToParents map[string]Parents
	Spouses        map[string][]string
	Children       map[string][]string

	// ParentConflicts counts children listed in more than one family.
	// The last family wins; the counter lets callers surface the conflict.
	ParentConflicts int
}

// Build derives the relationship maps from the extracted families,
// processed in source order.
func Build(families map[string]*types.Family, order []string) *Graph {
	g := &Graph{
		ChildToParents: make(map[string]Parents),
		Spouses:        make(map[string][]string),
		Children:       make(map[string][]string),
	}

	for _, id := range order {
		fam := families[id]
		if fam == nil {
			continue
		}

		for _, childID := range fam.ChildIDs {
			if _, seen := g.ChildToParents[childID]; seen {
				g.ParentConflicts++
			}
			g.ChildToParents[childID] = Parents{FatherID: fam.HusbandID, MotherID: fam.WifeID}
		}

		if fam.HusbandID != "" {
			g.Spouses[fam.HusbandID] = append(g.Spouses[fam.HusbandID], fam.WifeID)
			g.Children[fam.HusbandID] = append(g.Children[fam.HusbandID], fam.ChildIDs...)
		}
		if fam.WifeID != "" {
			g.Spouses[fam.WifeID] = append(g.Spouses[fam.WifeID], fam.HusbandID)
			g.Children[fam.WifeID] = append(g.Children[fam.WifeID], fam.ChildIDs...)
		}
	}

	return g
}

// Project builds the Relations projection for the given individual ids.
// Individuals absent from every relationship map get no entry at all;
// extracted individuals are never mutated. Names resolve against the
// completed name index, with unresolvable ids degrading to empty strings.
func Project(g *Graph, ids []string, names map[string]string) map[string]types.Relations {
	out := make(map[string]types.Relations)

	for _, id := range ids {
		parents, hasParents := g.ChildToParents[id]
		spouses, hasSpouses := g.Spouses[id]
		children, hasChildren := g.Children[id]
		if !hasParents && !hasSpouses && !hasChildren {
			continue
		}

		var rel types.Relations
		if hasParents {
			rel.FatherID = parents.FatherID
			rel.FatherName = names[parents.FatherID]
			rel.MotherID = parents.MotherID
			rel.MotherName = names[parents.MotherID]
		}
		if hasSpouses {
			rel.SpouseIDs, rel.SpouseNames = joinResolved(spouses, names)
		}
		if hasChildren {
			rel.ChildIDs, rel.ChildNames = joinResolved(children, names)
		}
		out[id] = rel
	}

	return out
}

// joinResolved comma-joins ids and their resolved names in matching order.
// Unresolved ids leave an empty slot in the name list rather than shifting
// positions.
func joinResolved(ids []string, names map[string]string) (string, string) {
	resolved := make([]string, len(ids))
	for i, id := range ids {
		resolved[i] = names[id]
	}
	return strings.Join(ids, ", "), strings.Join(resolved, ", ")
}
