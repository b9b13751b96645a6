// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

func normalizeString(t *testing.T, in string) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Normalize(strings.NewReader(in), &sb))
	return sb.String()
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "well-formed input passes through",
			in:   "0 HEAD\n1 SOUR App\n2 VERS 1.0\n",
			want: "0 HEAD\n1 SOUR App\n2 VERS 1.0\n",
		},
		{
			name: "depth jump is clamped",
			in:   "0 HEAD\n1 SOUR App\n3 VERS 1.0\n2 DATE 1 JAN 2000\n",
			want: "0 HEAD\n1 SOUR App\n2 VERS 1.0\n2 DATE 1 JAN 2000\n",
		},
		{
			name: "non-numeric depth becomes previous plus one",
			in:   "0 HEAD\n1 SOUR App\n2 VERS 1.0\nX DATE 1 JAN 2000\n",
			want: "0 HEAD\n1 SOUR App\n2 VERS 1.0\n3 DATE 1 JAN 2000\n",
		},
		{
			name: "non-numeric depth on first line becomes zero",
			in:   "X HEAD\n",
			want: "0 HEAD\n",
		},
		{
			name: "negative depth becomes zero",
			in:   "0 HEAD\n-2 TRLR\n",
			want: "0 HEAD\n0 TRLR\n",
		},
		{
			name: "first line deeper than zero is clamped",
			in:   "5 HEAD\n",
			want: "0 HEAD\n",
		},
		{
			name: "blank and whitespace lines dropped",
			in:   "0 HEAD\n\n   \n1 GEDC\n",
			want: "0 HEAD\n1 GEDC\n",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  0 HEAD  \r\n",
			want: "0 HEAD\n",
		},
		{
			name: "clamp tracks corrected depth not original",
			in:   "0 A\n1 B\n3 C\n4 D\n",
			want: "0 A\n1 B\n2 C\n3 D\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeString(t, tt.in))
		})
	}
}

func TestNormalizeDepthSequence(t *testing.T) {
	// The 0,1,3,2 sequence repairs to 0,1,2,2.
	in := "0 A\n1 B\n3 C\n2 D\n"
	lines, err := Lines(strings.NewReader(in))
	require.NoError(t, err)

	var depths []int
	for _, ln := range lines {
		depths = append(depths, ln.Depth)
	}
	assert.Equal(t, []int{0, 1, 2, 2}, depths)
}

func TestMonotonicDepthInvariant(t *testing.T) {
	// A deliberately hostile input: every corrected line must still satisfy
	// depth <= prev+1 and depth >= 0.
	in := "9 A\nX B\n-3 C\n2 D\n0 E\n7 F\nzz G\n1 H\n"
	lines, err := Lines(strings.NewReader(in))
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	prev := -1
	for i, ln := range lines {
		assert.GreaterOrEqual(t, ln.Depth, 0, "line %d", i)
		assert.LessOrEqual(t, ln.Depth, prev+1, "line %d", i)
		prev = ln.Depth
	}
}

func TestLinesTokenization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []types.Line
	}{
		{
			name: "pointer before tag",
			in:   "0 @I1@ INDI\n",
			want: []types.Line{{Depth: 0, Pointer: "@I1@", Tag: "INDI"}},
		},
		{
			name: "tag with value",
			in:   "0 @I1@ INDI\n1 NAME John /Doe/\n",
			want: []types.Line{
				{Depth: 0, Pointer: "@I1@", Tag: "INDI"},
				{Depth: 1, Tag: "NAME", Value: "John /Doe/"},
			},
		},
		{
			name: "tag only",
			in:   "0 TRLR\n",
			want: []types.Line{{Depth: 0, Tag: "TRLR"}},
		},
		{
			name: "value that looks like a pointer",
			in:   "0 @F1@ FAM\n1 HUSB @I1@\n",
			want: []types.Line{
				{Depth: 0, Pointer: "@F1@", Tag: "FAM"},
				{Depth: 1, Tag: "HUSB", Value: "@I1@"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lines(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeWindows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a lone UTF-8 byte.
	in := []byte("0 HEAD\n1 NOTE Ren\xe9e\n")
	lines, err := Lines(strings.NewReader(string(in)))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Renée", lines[1].Value)
}

func TestDecodeStripsBOM(t *testing.T) {
	in := "\xef\xbb\xbf0 HEAD\n"
	lines, err := Lines(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "HEAD", lines[0].Tag)
}
