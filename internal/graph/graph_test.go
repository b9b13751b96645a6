// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"testing"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

func family(id, husb, wife string, children ...string) *types.Family {
	return &types.Family{ID: id, HusbandID: husb, WifeID: wife, ChildIDs: children}
}

func buildGraph(fams ...*types.Family) *Graph {
	byID := make(map[string]*types.Family)
	var order []string
	for _, f := range fams {
		byID[f.ID] = f
		order = append(order, f.ID)
	}
	return Build(byID, order)
}

func TestBuildChildToParents(t *testing.T) {
	g := buildGraph(family("@F1@", "@I1@", "@I2@", "@I3@"))

	got, ok := g.ChildToParents["@I3@"]
	if !ok {
		t.Fatal("child @I3@ missing from map")
	}
	if got.FatherID != "@I1@" || got.MotherID != "@I2@" {
		t.Errorf("parents = %+v, want (@I1@, @I2@)", got)
	}
}

func TestBuildChildrenAccumulate(t *testing.T) {
	g := buildGraph(family("@F1@", "@I1@", "@I2@", "@I3@"))

	for _, parent := range []string{"@I1@", "@I2@"} {
		kids := g.Children[parent]
		if len(kids) != 1 || kids[0] != "@I3@" {
			t.Errorf("children of %s = %v, want [@I3@]", parent, kids)
		}
	}
}

// For every family with both spouses set, each spouse list must contain
// the other's id.
func TestBuildSpouseSymmetry(t *testing.T) {
	g := buildGraph(
		family("@F1@", "@I1@", "@I2@"),
		family("@F2@", "@I1@", "@I4@", "@I5@"),
	)

	contains := func(list []string, id string) bool {
		for _, v := range list {
			if v == id {
				return true
			}
		}
		return false
	}

	pairs := [][2]string{{"@I1@", "@I2@"}, {"@I1@", "@I4@"}}
	for _, p := range pairs {
		if !contains(g.Spouses[p[0]], p[1]) {
			t.Errorf("spouses of %s = %v, missing %s", p[0], g.Spouses[p[0]], p[1])
		}
		if !contains(g.Spouses[p[1]], p[0]) {
			t.Errorf("spouses of %s = %v, missing %s", p[1], g.Spouses[p[1]], p[0])
		}
	}
}

func TestBuildNoDeduplication(t *testing.T) {
	// The same couple with two family records keeps both spouse entries
	// and the children union in family order.
	g := buildGraph(
		family("@F1@", "@I1@", "@I2@", "@I3@"),
		family("@F2@", "@I1@", "@I2@", "@I4@"),
	)

	if got := g.Spouses["@I1@"]; len(got) != 2 || got[0] != "@I2@" || got[1] != "@I2@" {
		t.Errorf("spouses of @I1@ = %v, want duplicated [@I2@ @I2@]", got)
	}
	if got := g.Children["@I1@"]; len(got) != 2 || got[0] != "@I3@" || got[1] != "@I4@" {
		t.Errorf("children of @I1@ = %v, want [@I3@ @I4@]", got)
	}
}

func TestBuildDuplicateChildLastWins(t *testing.T) {
	g := buildGraph(
		family("@F1@", "@I1@", "@I2@", "@I3@"),
		family("@F2@", "@I7@", "@I8@", "@I3@"),
	)

	got := g.ChildToParents["@I3@"]
	if got.FatherID != "@I7@" || got.MotherID != "@I8@" {
		t.Errorf("parents = %+v, want last family (@I7@, @I8@)", got)
	}
	if g.ParentConflicts != 1 {
		t.Errorf("ParentConflicts = %d, want 1", g.ParentConflicts)
	}
}

func TestBuildMissingSpouse(t *testing.T) {
	// A family with only a wife still records her children; no entry is
	// created under the empty husband id.
	g := buildGraph(family("@F1@", "", "@I2@", "@I3@"))

	if _, ok := g.Spouses[""]; ok {
		t.Error("empty id must not appear in spouse map")
	}
	if got := g.Children["@I2@"]; len(got) != 1 || got[0] != "@I3@" {
		t.Errorf("children of @I2@ = %v", got)
	}
	if got := g.ChildToParents["@I3@"]; got.FatherID != "" || got.MotherID != "@I2@" {
		t.Errorf("parents = %+v", got)
	}
}

func TestProject(t *testing.T) {
	g := buildGraph(
		family("@F1@", "@I1@", "@I2@", "@I3@"),
		family("@F2@", "@I1@", "@I4@"),
	)
	names := map[string]string{
		"@I1@": "John Doe",
		"@I2@": "Jane Roe",
		"@I3@": "Jimmy Doe",
		"@I4@": "Mary Major",
	}

	rel := Project(g, []string{"@I1@", "@I2@", "@I3@", "@I4@", "@I9@"}, names)

	child, ok := rel["@I3@"]
	if !ok {
		t.Fatal("no relations for @I3@")
	}
	if child.FatherID != "@I1@" || child.FatherName != "John Doe" {
		t.Errorf("father = %q %q", child.FatherID, child.FatherName)
	}
	if child.MotherID != "@I2@" || child.MotherName != "Jane Roe" {
		t.Errorf("mother = %q %q", child.MotherID, child.MotherName)
	}

	husb := rel["@I1@"]
	if husb.SpouseIDs != "@I2@, @I4@" || husb.SpouseNames != "Jane Roe, Mary Major" {
		t.Errorf("spouses = %q / %q", husb.SpouseIDs, husb.SpouseNames)
	}
	if husb.ChildIDs != "@I3@" || husb.ChildNames != "Jimmy Doe" {
		t.Errorf("children = %q / %q", husb.ChildIDs, husb.ChildNames)
	}

	// @I9@ appears in no relationship map: absence, not an empty entry.
	if _, ok := rel["@I9@"]; ok {
		t.Error("unrelated individual must have no Relations entry")
	}
}

func TestProjectUnresolvedNamesKeepSlots(t *testing.T) {
	g := buildGraph(family("@F1@", "@I1@", "@I2@", "@I3@", "@I4@"))
	names := map[string]string{"@I3@": "Jimmy Doe"} // @I4@ unresolvable

	rel := Project(g, []string{"@I1@"}, names)
	got := rel["@I1@"]
	if got.ChildIDs != "@I3@, @I4@" {
		t.Errorf("ChildIDs = %q", got.ChildIDs)
	}
	if got.ChildNames != "Jimmy Doe, " {
		t.Errorf("ChildNames = %q, want empty slot preserved", got.ChildNames)
	}
}
