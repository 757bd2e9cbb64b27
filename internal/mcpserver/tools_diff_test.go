package mcpserver

import (
	"context"
	"testing"

	"github.com/erraggy/oasdelta/differ"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreV2 = "../../testdata/petstore-v2.yaml"

const diffBaseSpec = `openapi: "3.0.0"
info:
  title: Test API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name: {type: string}
`

const diffRenamedSpec = `openapi: "3.0.0"
info:
  title: Test API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Animal'
components:
  schemas:
    Animal:
      type: object
      properties:
        name: {type: string}
`

func callDiff(t *testing.T, input diffInput) (*mcp.CallToolResult, diffOutput) {
	t.Helper()
	result, output, err := handleDiff(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	return result, output
}

func TestDiffTool_Petstore(t *testing.T) {
	result, output := callDiff(t, diffInput{
		Base:     specInput{File: petstoreV1},
		Revision: specInput{File: petstoreV2},
	})
	require.Nil(t, result)

	assert.Equal(t, 10, output.TotalChanges)
	assert.Equal(t, map[string]string{"Owner": "Person", "Pet": "Animal"}, output.RenamedSchemas)
	assert.Equal(t, 2, output.Counts.RenamedSchemas)
	assert.Equal(t, "10 changes found (2 renamed schemas).", output.Summary)
	assert.Contains(t, output.Report, "## Schemas")
	assert.Contains(t, output.Report, "| `Pet` | `Animal` | Modification |")
	assert.Nil(t, output.Result, "summary detail omits the structured result")
	assert.Nil(t, output.Unmatched)
}

func TestDiffTool_Verbose(t *testing.T) {
	result, output := callDiff(t, diffInput{
		Base:     specInput{File: petstoreV1},
		Revision: specInput{File: petstoreV2},
		Detail:   "verbose",
	})
	require.Nil(t, result)

	structured, ok := output.Result.(map[string]any)
	require.True(t, ok, "expected object, got %T", output.Result)
	assert.Equal(t, map[string]any{"schemas": map[string]any{"Owner": "Person", "Pet": "Animal"}},
		structured["renamed_components"])
	assert.Equal(t, []any{"/stores"}, structured["new_paths"])

	modified := structured["modified_components"].(map[string]any)["schemas"].(map[string]any)
	pet := modified["Pet"].(map[string]any)
	assert.Equal(t, map[string]any{"new_name": "Animal", "status": "Modification"}, pet["rename"])

	assert.Contains(t, output.Report, "- `version`: `1.0.0` → `1.1.0`")
}

func TestDiffTool_NoRenames(t *testing.T) {
	_, output := callDiff(t, diffInput{
		Base:      specInput{File: petstoreV1},
		Revision:  specInput{File: petstoreV2},
		NoRenames: true,
	})

	assert.Nil(t, output.RenamedSchemas)
	assert.Equal(t, 12, output.TotalChanges)
	assert.Equal(t, 3, output.Counts.Components[differ.ComponentSchemas].New)
	assert.Equal(t, 2, output.Counts.Components[differ.ComponentSchemas].Removed)
	assert.Equal(t, "12 changes found.", output.Summary)
}

func TestDiffTool_TraceUnmatched(t *testing.T) {
	_, output := callDiff(t, diffInput{
		Base:           specInput{File: petstoreV1},
		Revision:       specInput{File: petstoreV2},
		TraceUnmatched: true,
	})

	require.NotNil(t, output.Unmatched)
	assert.Empty(t, output.Unmatched.Removed)
	require.Len(t, output.Unmatched.New, 1)
	assert.Equal(t, "Store", output.Unmatched.New[0].Schema)
	assert.Equal(t, []string{"Store (SCHEMA) <- /stores (ENDPOINT)"}, output.Unmatched.New[0].FormatChains())
}

func TestDiffTool_InlineRename(t *testing.T) {
	_, output := callDiff(t, diffInput{
		Base:     specInput{Content: diffBaseSpec},
		Revision: specInput{Content: diffRenamedSpec},
	})

	assert.Equal(t, map[string]string{"Pet": "Animal"}, output.RenamedSchemas)
	// the response $ref change plus the rename itself
	assert.Equal(t, 2, output.TotalChanges)
	assert.Equal(t, "2 changes found (1 renamed schema).", output.Summary)
}

func TestDiffTool_NoChanges(t *testing.T) {
	_, output := callDiff(t, diffInput{
		Base:     specInput{Content: diffBaseSpec},
		Revision: specInput{Content: diffBaseSpec},
	})

	assert.Zero(t, output.TotalChanges)
	assert.Equal(t, "No changes detected.", output.Summary)
	assert.Contains(t, output.Report, "No differences found.")
}

func TestDiffTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   diffInput
		wantMsg string
	}{
		{
			name:    "invalid base",
			input:   diffInput{Base: specInput{Content: "not valid yaml: ["}, Revision: specInput{Content: diffBaseSpec}},
			wantMsg: "base:",
		},
		{
			name:    "invalid revision",
			input:   diffInput{Base: specInput{Content: diffBaseSpec}, Revision: specInput{Content: "- just\n- a list\n"}},
			wantMsg: "revision:",
		},
		{
			name:    "missing base",
			input:   diffInput{Revision: specInput{Content: diffBaseSpec}},
			wantMsg: "exactly one of file or content",
		},
		{
			name: "invalid detail",
			input: diffInput{
				Base:     specInput{Content: diffBaseSpec},
				Revision: specInput{Content: diffBaseSpec},
				Detail:   "everything",
			},
			wantMsg: `invalid detail "everything"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output := callDiff(t, tt.input)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			require.Len(t, result.Content, 1)
			assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, tt.wantMsg)
			assert.Zero(t, output.TotalChanges)
		})
	}
}
