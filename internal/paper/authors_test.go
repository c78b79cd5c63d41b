// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Author
	}{
		{
			name:  "comma-separated string",
			input: `"Alice, Bob"`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
				{Name: "Bob"},
			},
		},
		{
			name:  "string array",
			input: `["Alice", "Bob"]`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
				{Name: "Bob"},
			},
		},
		{
			name:  "object array keeps metadata",
			input: `[{"name":"Alice","userId":"u1","email":"Alice@Lab.EDU"},{"name":"Bob","isCorresponding":true}]`,
			want: []Author{
				{Name: "Alice", UserID: "u1", Email: "alice@lab.edu"},
				{Name: "Bob", IsCorresponding: true},
			},
		},
		{
			name:  "mixed array",
			input: `["Alice", {"name":"Bob","email":"bob@lab.edu"}]`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
				{Name: "Bob", Email: "bob@lab.edu"},
			},
		},
		{
			name:  "dedup is case-insensitive and keeps the first occurrence",
			input: `"Alice, Bob, Alice"`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
				{Name: "Bob"},
			},
		},
		{
			name:  "first flagged corresponding author wins",
			input: `[{"name":"Alice"},{"name":"Bob","isCorresponding":true},{"name":"Carol","isCorresponding":true}]`,
			want: []Author{
				{Name: "Alice"},
				{Name: "Bob", IsCorresponding: true},
				{Name: "Carol"},
			},
		},
		{
			name:  "blank entries are dropped",
			input: `["  ", "Alice", ""]`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
			},
		},
		{
			name:  "unrecognized elements are dropped",
			input: `[42, "Alice", [1,2]]`,
			want: []Author{
				{Name: "Alice", IsCorresponding: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAuthors(json.RawMessage(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAuthorsDegenerateInputs(t *testing.T) {
	for _, input := range []string{"", "null", "{}", "not json"} {
		got := NormalizeAuthors(json.RawMessage(input))
		require.NotNil(t, got, "input %q must yield a non-nil list", input)
		assert.Empty(t, got)
	}
}

func TestNormalizeAuthorsSingleCorresponding(t *testing.T) {
	// Property: non-empty input always yields exactly one corresponding author.
	inputs := []string{
		`"Alice"`,
		`"Alice, Bob, Carol"`,
		`[{"name":"A","isCorresponding":true},{"name":"B","isCorresponding":true},{"name":"C","isCorresponding":true}]`,
		`[{"name":"A"},{"name":"B"}]`,
	}

	for _, input := range inputs {
		authors := NormalizeAuthors(json.RawMessage(input))
		require.NotEmpty(t, authors)

		count := 0
		for _, author := range authors {
			if author.IsCorresponding {
				count++
			}
		}
		assert.Equal(t, 1, count, "input %q", input)
	}
}
