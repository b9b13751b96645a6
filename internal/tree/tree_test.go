// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"strings"
	"testing"

	"github.com/pdiddy/gedcom-engine/internal/repair"
	"github.com/pdiddy/gedcom-engine/pkg/types"
)

func parseLines(t *testing.T, in string) []types.Line {
	t.Helper()
	lines, err := repair.Lines(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantRoots int
		check     func(t *testing.T, roots []*types.Record)
	}{
		{
			name:      "empty input",
			in:        "",
			wantRoots: 0,
		},
		{
			name:      "single root",
			in:        "0 HEAD\n",
			wantRoots: 1,
		},
		{
			name:      "sibling roots",
			in:        "0 HEAD\n0 @I1@ INDI\n0 TRLR\n",
			wantRoots: 3,
		},
		{
			name:      "nested children",
			in:        "0 HEAD\n1 SOUR App\n2 VERS 1.0\n1 GEDC\n2 VERS 5.5\n",
			wantRoots: 1,
			check: func(t *testing.T, roots []*types.Record) {
				head := roots[0]
				if len(head.Children) != 2 {
					t.Fatalf("HEAD children = %d, want 2", len(head.Children))
				}
				sour := head.Children[0]
				if sour.Tag != "SOUR" || sour.Value != "App" {
					t.Errorf("first child = %s %q, want SOUR App", sour.Tag, sour.Value)
				}
				if got := sour.ChildValue("VERS"); got != "1.0" {
					t.Errorf("SOUR VERS = %q, want 1.0", got)
				}
				if got := head.Children[1].ChildValue("VERS"); got != "5.5" {
					t.Errorf("GEDC VERS = %q, want 5.5", got)
				}
			},
		},
		{
			name:      "pop back to shallower level",
			in:        "0 @I1@ INDI\n1 BIRT\n2 DATE 1 JAN 1900\n1 DEAT\n2 PLAC Boston\n0 @I2@ INDI\n",
			wantRoots: 2,
			check: func(t *testing.T, roots []*types.Record) {
				indi := roots[0]
				if len(indi.Children) != 2 {
					t.Fatalf("INDI children = %d, want 2", len(indi.Children))
				}
				if got := indi.Children[1].ChildValue("PLAC"); got != "Boston" {
					t.Errorf("DEAT PLAC = %q, want Boston", got)
				}
			},
		},
		{
			name:      "name nested under individual",
			in:        "0 @I1@ INDI\n1 NAME John /Doe/\n",
			wantRoots: 1,
			check: func(t *testing.T, roots []*types.Record) {
				if roots[0].Pointer != "@I1@" {
					t.Errorf("pointer = %q, want @I1@", roots[0].Pointer)
				}
				if got := roots[0].ChildValue("NAME"); got != "John /Doe/" {
					t.Errorf("NAME = %q, want John /Doe/", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := Build(parseLines(t, tt.in))
			if len(roots) != tt.wantRoots {
				t.Fatalf("roots = %d, want %d", len(roots), tt.wantRoots)
			}
			if tt.check != nil {
				tt.check(t, roots)
			}
		})
	}
}

// Every record's children must sit exactly one level deeper than the record
// itself, for any input the repair pass accepts.
func TestBuildDepthProperty(t *testing.T) {
	in := "0 HEAD\n1 SOUR App\n3 VERS 1.0\nX CORP Somewhere\n0 @I1@ INDI\n1 BIRT\n2 DATE 1900\n1 NOTE hi\n"
	roots := Build(parseLines(t, in))

	var walk func(t *testing.T, rec *types.Record)
	walk = func(t *testing.T, rec *types.Record) {
		for _, c := range rec.Children {
			if c.Depth != rec.Depth+1 {
				t.Errorf("child %s depth = %d, parent %s depth = %d", c.Tag, c.Depth, rec.Tag, rec.Depth)
			}
			walk(t, c)
		}
	}
	for _, r := range roots {
		if r.Depth != 0 {
			t.Errorf("root %s depth = %d, want 0", r.Tag, r.Depth)
		}
		walk(t, r)
	}
}

// Children of the same tag keep source order.
func TestBuildPreservesOrder(t *testing.T) {
	in := "0 @I1@ INDI\n1 NOTE first\n1 NOTE second\n1 NOTE third\n"
	roots := Build(parseLines(t, in))

	want := []string{"first", "second", "third"}
	for i, c := range roots[0].Children {
		if c.Value != want[i] {
			t.Errorf("note %d = %q, want %q", i, c.Value, want[i])
		}
	}
}
