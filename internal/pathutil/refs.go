package pathutil

import "strings"

// RefPrefixSchemas is the JSON Pointer prefix of named component schemas.
const RefPrefixSchemas = "#/components/schemas/"

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// SchemaRef builds "#/components/schemas/{name}", escaping the name as a
// JSON Pointer token.
func SchemaRef(name string) string {
	return RefPrefixSchemas + pointerEscaper.Replace(name)
}

// SchemaNameFromRef extracts the component schema name addressed by ref.
// It reports false for refs that do not point directly at a schema under
// components.schemas, such as external refs or pointers into a schema body.
func SchemaNameFromRef(ref string) (string, bool) {
	token, ok := strings.CutPrefix(ref, RefPrefixSchemas)
	if !ok || token == "" || strings.Contains(token, "/") {
		return "", false
	}
	return pointerUnescaper.Replace(token), true
}
