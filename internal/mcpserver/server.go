// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasdelta's diff as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasdelta"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasdelta MCP server: compares two versions of an OpenAPI document and detects renamed schemas.

Configuration: defaults are set through OASDELTA_* environment variables in your MCP client config.

Key settings:
- OASDELTA_CACHE_ENABLED (default: true): cache parsed documents for the session
- OASDELTA_CACHE_FILE_TTL (default: 15m): cache TTL for files on disk
- OASDELTA_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline content
- OASDELTA_CACHE_MAX_SIZE (default: 10): maximum cached documents
- OASDELTA_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- OASDELTA_DETECT_RENAMES (default: true): run schema rename detection

Caching: file entries are keyed by path+mtime and are invalidated when the file changes. Inline content is keyed by its SHA-256. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdelta", Version: oasdelta.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two versions of the same OpenAPI document. Reports added, removed and modified paths, operations, tags, servers and components, and pairs renamed schemas (status Rename when content is identical, Modification when it also changed). Returns per-section counts, the rename map and a Markdown report. Use detail=verbose for every nested change and the full structured result; use trace_unmatched=true to see where schemas left unpaired are referenced.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize",
		Description: "Summarize one OpenAPI document: title, API version, OpenAPI version, path/operation/schema counts, servers and tags. Use it to check inputs before running diff.",
	}, handleSummarize)
}

// pathPattern matches absolute filesystem paths so they are not leaked to
// MCP clients in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
