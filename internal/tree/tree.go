// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree reconstructs the hierarchical record tree from a repaired
// line sequence, using the corrected depth as the nesting signal.
package tree

import "github.com/pdiddy/gedcom-engine/pkg/types"

// Build turns a repaired line sequence into a forest of records. It keeps
// a stack of open records indexed by depth: for each line the stack is
// popped until the top is strictly shallower, then the new record is
// appended to the new top (or to the root set when the stack is empty).
//
// Build assumes the monotonic depth invariant restored by the repair pass
// and does not re-validate it. Every line becomes exactly one record.
func Build(lines []types.Line) []*types.Record {
	var (
		roots []*types.Record
		stack []*types.Record
	)

	for _, ln := range lines {
		rec := &types.Record{
			Tag:     ln.Tag,
			Pointer: ln.Pointer,
			Value:   ln.Value,
			Depth:   ln.Depth,
		}

		for len(stack) > 0 && stack[len(stack)-1].Depth >= ln.Depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, rec)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, rec)
		}
		stack = append(stack, rec)
	}

	return roots
}
