// Package report renders a differ.DiffResult for people.
//
// Two syntaxes are supported, plain text and Markdown, at two detail levels.
// Summary detail lists the names that were added (+), removed (-), modified
// (~) or renamed in each section. Verbose detail expands every modified entry
// into its nested changes, printing old and new values; multi-word strings
// such as descriptions are shown as an inline word diff.
//
//	result, _ := differ.New().Diff("v1.yaml", "v2.yaml")
//	err := report.Render(os.Stdout, result,
//		report.WithFormat(report.FormatMarkdown),
//		report.WithDetail(report.DetailVerbose),
//	)
//
// Summarize returns the per-section counts used in the report header.
package report
