package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type diffInput struct {
	Base           specInput `json:"base"                      jsonschema:"The base/original OpenAPI document"`
	Revision       specInput `json:"revision"                  jsonschema:"The revised OpenAPI document to compare against the base"`
	Detail         string    `json:"detail,omitempty"          jsonschema:"summary (default) lists changed names; verbose adds every nested change and the full structured result"`
	NoRenames      bool      `json:"no_renames,omitempty"      jsonschema:"Disable schema rename detection"`
	TraceUnmatched bool      `json:"trace_unmatched,omitempty" jsonschema:"Explain where schemas left unmatched by rename detection are referenced"`
}

type diffAncestry struct {
	Removed []differ.Ancestry `json:"removed,omitempty"`
	New     []differ.Ancestry `json:"new,omitempty"`
}

type diffOutput struct {
	TotalChanges   int               `json:"total_changes"`
	Counts         report.Summary    `json:"counts"`
	RenamedSchemas map[string]string `json:"renamed_schemas,omitempty"`
	Unmatched      *diffAncestry     `json:"unmatched,omitempty"`
	Summary        string            `json:"summary"`
	Report         string            `json:"report"`
	Result         any               `json:"result,omitempty"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	detail := report.DetailSummary
	switch input.Detail {
	case "", string(report.DetailSummary):
	case string(report.DetailVerbose):
		detail = report.DetailVerbose
	default:
		return errResult(fmt.Errorf("invalid detail %q; valid values: summary, verbose", input.Detail)), diffOutput{}, nil
	}

	base, err := input.Base.resolve()
	if err != nil {
		return errResult(fmt.Errorf("base: %w", err)), diffOutput{}, nil
	}
	revision, err := input.Revision.resolve()
	if err != nil {
		return errResult(fmt.Errorf("revision: %w", err)), diffOutput{}, nil
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*base),
		differ.WithTargetParsed(*revision),
		differ.WithRenameDetection(cfg.DetectRenames && !input.NoRenames),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	var rendered bytes.Buffer
	if err := report.Render(&rendered, result,
		report.WithFormat(report.FormatMarkdown),
		report.WithDetail(detail),
	); err != nil {
		return errResult(err), diffOutput{}, nil
	}

	counts := report.Summarize(result)
	output := diffOutput{
		TotalChanges:   counts.Total(),
		Counts:         counts,
		RenamedSchemas: result.RenamedComponents[differ.ComponentSchemas],
		Report:         rendered.String(),
	}
	output.Summary = buildDiffSummary(output)

	if input.TraceUnmatched {
		removed, added := result.UnmatchedSchemas()
		output.Unmatched = &diffAncestry{
			Removed: differ.TraceAncestry(base.Document, removed),
			New:     differ.TraceAncestry(revision.Document, added),
		}
	}

	if detail == report.DetailVerbose {
		structured, err := toJSONValue(result)
		if err != nil {
			return errResult(err), diffOutput{}, nil
		}
		output.Result = structured
	}

	return nil, output, nil
}

// toJSONValue converts v to the generic value its JSON encoding decodes to,
// so diff nodes reach the client in their snake_case wire shape.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return out, nil
}

func buildDiffSummary(output diffOutput) string {
	if output.TotalChanges == 0 {
		return "No changes detected."
	}
	summary := formatCount(output.TotalChanges, "change") + " found"
	if n := output.Counts.RenamedSchemas; n > 0 {
		summary += " (" + formatCount(n, "renamed schema") + ")"
	}
	return summary + "."
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
