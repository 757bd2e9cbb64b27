package differ

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestNodeJSONShape(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "leaf keeps both sides",
			node: &LeafChange{Old: nil, New: "v2"},
			want: `{"new":"v2","old":null}`,
		},
		{
			name: "set omits empty members",
			node: &SetChange{New: []string{"a"}},
			want: `{"new":["a"]}`,
		},
		{
			name: "combinator always has both lists",
			node: &CombinatorChange{Added: []any{map[string]any{"type": "string"}}},
			want: `{"added":[{"type":"string"}],"removed":[]}`,
		},
		{
			name: "schema diff nests by keyword",
			node: &SchemaDiff{
				Constraints: map[string]*LeafChange{"type": {Old: "string", New: "integer"}},
				Ref:         &LeafChange{Old: "#/components/schemas/A", New: nil},
				Properties:  &SetChange{Removed: []string{"x"}},
				Combinators: map[string]*CombinatorChange{"oneOf": {Removed: []any{"r"}}},
				Rename:      &RenameInfo{NewName: "B", Status: RenameStatusModification},
			},
			want: `{"$ref":{"new":null,"old":"#/components/schemas/A"},"oneOf":{"added":[],"removed":["r"]},` +
				`"properties":{"removed":["x"]},"rename":{"new_name":"B","status":"Modification"},` +
				`"type":{"new":"integer","old":"string"}}`,
		},
		{
			name: "path diff",
			node: &PathDiff{
				RemovedOps:  []string{"delete"},
				ModifiedOps: map[string]*ObjectDiff{"get": {Fields: map[string]Node{"summary": &LeafChange{Old: "a", New: "b"}}}},
			},
			want: `{"modified_ops":{"get":{"summary":{"new":"b","old":"a"}}},"removed_ops":["delete"]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestNodeYAML(t *testing.T) {
	diff := &SchemaDiff{
		Constraints: map[string]*LeafChange{"maxLength": {Old: 10, New: nil}},
		Rename:      &RenameInfo{NewName: "Person", Status: RenameStatusRename},
	}
	data, err := yaml.Marshal(diff)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any{"old": 10, "new": nil}, decoded["maxLength"])
	assert.Equal(t, map[string]any{"new_name": "Person", "status": "Rename"}, decoded["rename"])
}

func TestNodeEmptyAndSize(t *testing.T) {
	var nilLeaf *LeafChange
	var nilSet *SetChange
	var nilSchema *SchemaDiff
	var nilObject *ObjectDiff
	var nilPath *PathDiff
	var nilComb *CombinatorChange

	for _, n := range []Node{nilLeaf, nilSet, nilSchema, nilObject, nilPath, nilComb} {
		assert.True(t, n.Empty())
		assert.Zero(t, n.Size())
		assert.True(t, isEmpty(n))
	}
	assert.True(t, isEmpty(nil))

	renameOnly := &SchemaDiff{Rename: &RenameInfo{NewName: "X", Status: RenameStatusRename}}
	assert.True(t, renameOnly.Empty(), "rename metadata is not a difference")

	obj := &ObjectDiff{}
	obj.set("skipped", nilSchema)
	obj.set("skipped too", &SetChange{})
	assert.Nil(t, obj.orNil())
	obj.set("required", &LeafChange{Old: false, New: true})
	obj.set("content", &SetChange{New: []string{"a", "b"}})
	assert.Equal(t, 3, obj.Size())

	path := &PathDiff{NewOps: []string{"get"}, ModifiedOps: map[string]*ObjectDiff{"post": obj}}
	assert.Equal(t, 4, path.Size())
}

func TestWalkSchemaDiffs(t *testing.T) {
	inner := &SchemaDiff{Ref: &LeafChange{Old: "a", New: "b"}}
	items := &SchemaDiff{Constraints: map[string]*LeafChange{"type": {Old: "x", New: "y"}}}
	outer := &SchemaDiff{
		Properties: &SetChange{Modified: map[string]Node{"p": inner}},
		Items:      items,
	}
	tree := &PathDiff{ModifiedOps: map[string]*ObjectDiff{
		"get": {Fields: map[string]Node{
			"responses": &SetChange{Modified: map[string]Node{"200": &ObjectDiff{Fields: map[string]Node{"schema": outer}}}},
			"summary":   &LeafChange{Old: "s", New: "t"},
		}},
	}}

	var seen []*SchemaDiff
	walkSchemaDiffs(tree, func(d *SchemaDiff) { seen = append(seen, d) })
	assert.Equal(t, []*SchemaDiff{outer, inner, items}, seen)
}
