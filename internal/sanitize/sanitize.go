// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize cleans extracted string values for markup-bearing output.
package sanitize

import "strings"

// replacer swaps problematic glyphs and escapes markup-significant
// characters in a single pass, so the ampersands it inserts are never
// themselves re-escaped.
var replacer = strings.NewReplacer(
	"^", " ",
	"·", ".",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Clean removes control characters, replaces the caret and interpunct
// glyphs, and escapes &, <, > as markup entities. Clean is not idempotent:
// a second application double-escapes ampersands. Apply it exactly once,
// at extraction time.
func Clean(s string) string {
	s = strings.Map(dropControl, s)
	return replacer.Replace(s)
}

// dropControl removes C0 control characters except tab, newline, and
// carriage return (which never survive line-based parsing anyway).
func dropControl(r rune) rune {
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return -1
	}
	return r
}
