package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetComparator(t *testing.T) {
	tests := []struct {
		name   string
		source map[string]any
		target map[string]any
		want   *SetChange
	}{
		{
			name:   "both empty",
			source: nil,
			target: map[string]any{},
			want:   nil,
		},
		{
			name:   "identical",
			source: map[string]any{"a": 1, "b": "x"},
			target: map[string]any{"b": "x", "a": 1.0},
			want:   nil,
		},
		{
			name:   "added and removed are sorted",
			source: map[string]any{"z": 1, "m": 1, "keep": 1},
			target: map[string]any{"keep": 1, "b": 1, "a": 1},
			want:   &SetChange{New: []string{"a", "b"}, Removed: []string{"m", "z"}},
		},
		{
			name:   "modified",
			source: map[string]any{"a": 1},
			target: map[string]any{"a": 2},
			want:   &SetChange{Modified: map[string]Node{"a": &LeafChange{Old: 1, New: 2}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newComparator()
			defer c.release()
			assert.Equal(t, tt.want, c.set(tt.source, tt.target, leafItem))
		})
	}
}

func TestKeyedSet(t *testing.T) {
	source := []any{
		map[string]any{"name": "limit", "in": "query"},
		map[string]any{"$ref": "#/components/parameters/Page"},
	}
	target := []any{
		map[string]any{"name": "limit", "in": "header"},
		map[string]any{"name": "offset", "in": "query"},
	}

	c := newComparator()
	defer c.release()
	got := c.keyedSet(source, target, leafItem, "name", "$ref")
	require.NotNil(t, got)
	assert.Equal(t, []string{"offset"}, got.New)
	assert.Equal(t, []string{"#/components/parameters/Page"}, got.Removed)
	assert.Contains(t, got.Modified, "limit")
}

func TestKeyedSet_MissingKeyPanics(t *testing.T) {
	c := newComparator("tags")
	defer c.release()
	assert.PanicsWithValue(t, "differ: expected string at tags[1].name, got <nil>", func() {
		c.keyedSet([]any{map[string]any{"name": "a"}, map[string]any{"description": "x"}}, nil, leafItem, "name")
	})
}
