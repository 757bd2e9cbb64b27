package parser

import (
	"github.com/erraggy/oasdelta/internal/pathutil"
)

// Document is a decoded OpenAPI document. Nested mappings are
// map[string]any and sequences are []any.
type Document map[string]any

// Map returns the mapping stored under key, or nil when the key is absent,
// null, or not a mapping.
func (d Document) Map(key string) map[string]any {
	m, _ := d[key].(map[string]any)
	return m
}

// Section walks nested mappings along keys and returns the value found, or
// nil when any step is absent or null. Section("components", "schemas")
// returns the raw schemas value, which may be any type.
func (d Document) Section(keys ...string) any {
	var cur any = map[string]any(d)
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// Schemas returns components.schemas, or nil when absent.
func (d Document) Schemas() map[string]any {
	m, _ := d.Section("components", "schemas").(map[string]any)
	return m
}

// Schema returns the named component schema. A null or non-mapping entry is
// reported as absent.
func (d Document) Schema(name string) (map[string]any, bool) {
	s, ok := d.Schemas()[name].(map[string]any)
	return s, ok
}

// ResolveSchemaRef resolves a #/components/schemas/<Name> reference. Any
// other reference form, or a name that is not defined, is reported as absent.
func (d Document) ResolveSchemaRef(ref string) (map[string]any, bool) {
	name, ok := pathutil.SchemaNameFromRef(ref)
	if !ok {
		return nil, false
	}
	return d.Schema(name)
}

// Version returns the openapi (or, for 2.0 documents, swagger) version
// string, or "" when neither is a string.
func (d Document) Version() string {
	if v, ok := d["openapi"].(string); ok {
		return v
	}
	if v, ok := d["swagger"].(string); ok {
		return v
	}
	return ""
}

// Title returns info.title, or "" when absent.
func (d Document) Title() string {
	s, _ := d.Section("info", "title").(string)
	return s
}

// APIVersion returns info.version, or "" when absent.
func (d Document) APIVersion() string {
	s, _ := d.Section("info", "version").(string)
	return s
}
