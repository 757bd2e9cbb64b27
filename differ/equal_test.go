package differ

import (
	"testing"

	"github.com/erraggy/oasdelta/parser"
	"github.com/stretchr/testify/assert"
)

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil vs value", nil, "x", false},
		{"strings", "a", "a", true},
		{"int vs float", 3, 3.0, true},
		{"int vs uint64", 3, uint64(3), true},
		{"different numbers", 3, 3.5, false},
		{"number vs string", 3, "3", false},
		{"bool", true, true, true},
		{"lists", []any{1, "a"}, []any{1.0, "a"}, true},
		{"list order", []any{1, 2}, []any{2, 1}, false},
		{"maps", map[string]any{"a": []any{1}}, map[string]any{"a": []any{1}}, true},
		{"map missing key", map[string]any{"a": nil}, map[string]any{"b": nil}, false},
		{"map vs list", map[string]any{}, []any{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuesEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, valuesEqual(tt.b, tt.a))
		})
	}
}

func TestContentIdentical(t *testing.T) {
	source := parser.Document(yamlMap(t, `
components:
  schemas:
    Owner:
      type: object
      properties:
        name: {type: string}
    Node:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Node'
    Pet:
      type: object
      properties:
        owner:
          $ref: '#/components/schemas/Owner'
        tags:
          type: array
          items: {type: string}
`))
	target := parser.Document(yamlMap(t, `
components:
  schemas:
    Person:
      type: object
      properties:
        name: {type: string}
    Link:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Link'
    Animal:
      type: object
      properties:
        owner:
          $ref: '#/components/schemas/Person'
        tags:
          type: array
          items: {type: string}
    Loose:
      type: object
      properties:
        owner:
          $ref: '#/components/schemas/Missing'
        tags:
          type: array
          items: {type: string}
    Inline:
      type: object
      properties:
        owner:
          type: object
          properties:
            name: {type: string}
        tags:
          type: array
          items: {type: string}
`))

	schema := func(doc parser.Document, name string) map[string]any {
		s, ok := doc.Schema(name)
		if !ok {
			t.Fatalf("schema %s not found", name)
		}
		return s
	}

	tests := []struct {
		name           string
		source, target string
		want           bool
	}{
		{"refs resolve to identical schemas", "Pet", "Animal", true},
		{"recursive schemas", "Node", "Link", true},
		{"plain identical", "Owner", "Person", true},
		{"unresolved ref", "Pet", "Loose", false},
		{"ref against inline schema", "Pet", "Inline", false},
		{"different content", "Owner", "Animal", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contentIdentical(source, target, schema(source, tt.source), schema(target, tt.target))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentIdentical_ItemsPresence(t *testing.T) {
	doc := parser.Document{}
	assert.False(t, contentIdentical(doc, doc,
		map[string]any{"type": "array", "items": map[string]any{}},
		map[string]any{"type": "array"}))
	assert.False(t, contentIdentical(doc, doc,
		map[string]any{"allOf": []any{map[string]any{}}},
		map[string]any{"allOf": []any{map[string]any{}, map[string]any{}}}))
	assert.True(t, contentIdentical(doc, doc,
		map[string]any{"$ref": "other.yaml#/Pet"},
		map[string]any{"$ref": "other.yaml#/Pet"}))
}
