package differ

import (
	"fmt"
	"strings"
	"testing"

	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/parser"
	"github.com/stretchr/testify/require"
)

// mustParse loads an inline YAML document.
func mustParse(t *testing.T, doc string) parser.ParseResult {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(doc)))
	require.NoError(t, err)
	return *result
}

// diffYAML runs a default Differ over two inline YAML documents.
func diffYAML(t *testing.T, source, target string) *DiffResult {
	t.Helper()
	result, err := New().DiffParsed(mustParse(t, source), mustParse(t, target))
	require.NoError(t, err)
	return result
}

// testSpec builds a document with one GET endpoint per entry of endpoints,
// each returning the named component schema. schemas is the YAML body of
// components.schemas, indented by four spaces.
func testSpec(endpoints map[string]string, schemas string) string {
	var b strings.Builder
	b.WriteString("openapi: 3.0.3\ninfo:\n  title: Test\n  version: \"1\"\npaths:\n")
	for _, path := range maputil.SortedKeys(endpoints) {
		fmt.Fprintf(&b, `  %s:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/%s'
`, path, endpoints[path])
	}
	b.WriteString("components:\n  schemas:\n")
	b.WriteString(strings.TrimPrefix(schemas, "\n"))
	return b.String()
}

// yamlMap decodes an inline YAML mapping into the shape the differ sees.
func yamlMap(t *testing.T, doc string) map[string]any {
	t.Helper()
	return map[string]any(mustParse(t, doc).Document)
}
