// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repair normalizes the level numbers of a GEDCOM line stream.
//
// Exported GEDCOM files frequently carry broken level numbers: non-numeric
// tokens, negative levels, or jumps of more than one level. Repair is a
// single forward pass that substitutes and clamps levels so the output
// satisfies the monotonic depth invariant (each line at most one level
// deeper than the previous, never negative). The repair is lossy by
// design: out-of-order jumps are flattened, never rejected.
package repair

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// repaired is one line after level correction: the corrected depth and the
// remaining tokens, split into at most two fields (tag-or-pointer, rest).
type repaired struct {
	depth  int
	fields []string
}

// Normalize reads raw GEDCOM text from r and writes the level-repaired
// line sequence to w, one line per input line. Blank lines are dropped;
// all other tokens are preserved verbatim.
func Normalize(r io.Reader, w io.Writer) error {
	lines, err := repairAll(r)
	if err != nil {
		return err
	}
	for _, ln := range lines {
		if _, err := fmt.Fprintf(w, "%d %s\n", ln.depth, strings.Join(ln.fields, " ")); err != nil {
			return fmt.Errorf("writing repaired line: %w", err)
		}
	}
	return nil
}

// Lines reads raw GEDCOM text from r, repairs the level numbers, and
// tokenizes each line into a types.Line. A token of the form @X@ directly
// after the level is a cross-reference pointer; otherwise the token is
// the tag and anything after it is the value.
func Lines(r io.Reader) ([]types.Line, error) {
	reps, err := repairAll(r)
	if err != nil {
		return nil, err
	}

	lines := make([]types.Line, 0, len(reps))
	for _, rp := range reps {
		ln := types.Line{Depth: rp.depth}
		head := rp.fields[0]
		if isPointer(head) {
			ln.Pointer = head
			if len(rp.fields) > 1 {
				tag, val, _ := strings.Cut(rp.fields[1], " ")
				ln.Tag = tag
				ln.Value = val
			}
		} else {
			ln.Tag = head
			if len(rp.fields) > 1 {
				ln.Value = rp.fields[1]
			}
		}
		if ln.Tag == "" {
			// A pointer with no tag is not a structural statement.
			continue
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

// repairAll performs the single forward repair pass. State is O(1): only
// the previous corrected depth carries between lines.
func repairAll(r io.Reader) ([]repaired, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	prev := -1
	var out []repaired
	for _, raw := range strings.Split(decode(data), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.SplitN(raw, " ", 3)
		if len(parts) < 2 {
			// A lone level token carries no tag; nothing to emit.
			continue
		}

		depth, convErr := strconv.Atoi(parts[0])
		if convErr != nil {
			// Malformed level tokens never abort: substitute one level
			// deeper than the previous line.
			if prev >= 0 {
				depth = prev + 1
			} else {
				depth = 0
			}
		}
		if depth > prev+1 {
			depth = prev + 1
		}
		if depth < 0 {
			depth = 0
		}

		out = append(out, repaired{depth: depth, fields: parts[1:]})
		prev = depth
	}
	return out, nil
}

// decode strips a UTF-8 BOM and falls back to Windows-1252 when the input
// is not valid UTF-8. Many legacy GEDCOM exports use ANSI code pages;
// every byte decodes under Windows-1252, so this never fails.
func decode(data []byte) string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// isPointer reports whether tok is a cross-reference id like @I1@.
func isPointer(tok string) bool {
	return len(tok) > 2 && strings.HasPrefix(tok, "@") && strings.HasSuffix(tok, "@")
}
