// Package oasdelta compares two versions of an OpenAPI document and reports
// what changed, recognizing schemas that were renamed instead of listing them
// as one removal plus one addition.
//
// # Overview
//
// The module consists of these packages:
//
//   - parser: load a YAML or JSON document into a generic tree
//   - differ: compute the structural diff and detect schema renames
//   - report: render a diff as plain text or Markdown
//   - oaserrors: error types shared by the packages above
//
// The oasdelta command wraps them in a CLI (diff, mcp, version) and an MCP
// server exposing the diff to AI assistants.
//
// # Installation
//
//	go install github.com/erraggy/oasdelta/cmd/oasdelta@latest
//
// # Quick Start
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("api-v1.yaml"),
//		differ.WithTargetFilePath("api-v2.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for old, renamed := range result.RenamedComponents["schemas"] {
//		fmt.Printf("%s -> %s\n", old, renamed)
//	}
//	_ = report.Render(os.Stdout, result, report.WithDetail(report.DetailVerbose))
//
// # Rename Detection
//
// A schema missing from the new document and a schema new to it are paired
// when the rest of the diff shows references switching from one to the
// other. Pairs with identical content are reported as renames; pairs that
// also changed are reported as modifications and carry their schema diff.
// Nested schemas are paired transitively from their renamed parents.
//
// # Command-Line Usage
//
//	oasdelta diff api-v1.yaml api-v2.yaml
//	oasdelta diff --format markdown --detail verbose api-v1.yaml api-v2.yaml
//	oasdelta diff --format json --no-renames api-v1.yaml api-v2.yaml
//	oasdelta mcp
//
// The diff command exits with status 1 when the documents differ.
package oasdelta
