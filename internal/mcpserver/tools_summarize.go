package mcpserver

import (
	"context"

	"github.com/erraggy/oasdelta/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type summarizeInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to summarize"`
}

type summarizeOutput struct {
	Title          string   `json:"title"`
	APIVersion     string   `json:"api_version"`
	OpenAPIVersion string   `json:"openapi_version"`
	Format         string   `json:"format"`
	Size           string   `json:"size"`
	PathCount      int      `json:"path_count"`
	OperationCount int      `json:"operation_count"`
	SchemaCount    int      `json:"schema_count"`
	Servers        []string `json:"servers,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

func handleSummarize(_ context.Context, _ *mcp.CallToolRequest, input summarizeInput) (*mcp.CallToolResult, summarizeOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), summarizeOutput{}, nil
	}

	doc := result.Document
	return nil, summarizeOutput{
		Title:          doc.Title(),
		APIVersion:     doc.APIVersion(),
		OpenAPIVersion: result.Version,
		Format:         string(result.SourceFormat),
		Size:           parser.FormatBytes(result.SourceSize),
		PathCount:      result.Stats.PathCount,
		OperationCount: result.Stats.OperationCount,
		SchemaCount:    result.Stats.SchemaCount,
		Servers:        listField(doc, "servers", "url"),
		Tags:           listField(doc, "tags", "name"),
	}, nil
}

// listField collects the string field of every mapping in a top-level list.
func listField(doc parser.Document, section, field string) []string {
	items, _ := doc.Section(section).([]any)
	var out []string
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m[field].(string); ok {
			out = append(out, s)
		}
	}
	return out
}
