package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasdelta/differ"
	"github.com/erraggy/oasdelta/internal/cliutil"
	"github.com/erraggy/oasdelta/internal/fileutil"
	"github.com/erraggy/oasdelta/parser"
	"github.com/erraggy/oasdelta/report"
)

// ErrDifferences is returned by HandleDiff when the documents differ. It
// maps to exit status 1 and is not an error worth printing.
var ErrDifferences = errors.New("documents differ")

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Format         string
	Detail         string
	NoRenames      bool
	NoColor        bool
	Debug          bool
	TraceUnmatched bool
	Output         string
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, markdown, json, or yaml")
	fs.StringVar(&flags.Detail, "detail", DetailSummary, "detail level for text and markdown: summary or verbose")
	fs.BoolVar(&flags.NoRenames, "no-renames", false, "disable schema rename detection")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored text output")
	fs.BoolVar(&flags.Debug, "debug", false, "log rename detection decisions to stderr")
	fs.BoolVar(&flags.TraceUnmatched, "trace-unmatched", false, "print where unmatched schemas are referenced to stderr")
	fs.StringVar(&flags.Output, "output", "", "write the report to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdelta diff [flags] <source> <target>\n\n")
		cliutil.Writef(fs.Output(), "Compare two versions of an OpenAPI document and report differences,\n")
		cliutil.Writef(fs.Output(), "pairing schemas that were renamed. Use - to read one document from stdin.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable text, colored on a terminal\n")
		cliutil.Writef(fs.Output(), "  markdown        Markdown headings, lists and a rename table\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasdelta diff api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  oasdelta diff --detail verbose --format markdown -o CHANGES.md api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  oasdelta diff --format json api-v1.yaml api-v2.yaml | jq '.renamed_components'\n")
		cliutil.Writef(fs.Output(), "  oasdelta diff --debug --trace-unmatched api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No differences found\n")
		cliutil.Writef(fs.Output(), "  1    Differences found\n")
		cliutil.Writef(fs.Output(), "  2    An error occurred\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command. The report goes to stdout (or the
// --output file); diagnostics go to stderr. It returns ErrDifferences when
// the documents differ.
func HandleDiff(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupDiffFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}
	sourcePath, targetPath := fs.Arg(0), fs.Arg(1)
	if sourcePath == StdinFilePath && targetPath == StdinFilePath {
		return fmt.Errorf("only one document can be read from stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateDetail(flags.Detail); err != nil {
		return err
	}

	var logger parser.Logger = parser.NopLogger{}
	if flags.Debug {
		logger = parser.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	source, err := loadDocument(sourcePath, stdin, logger)
	if err != nil {
		return fmt.Errorf("parsing source: %w", err)
	}
	target, err := loadDocument(targetPath, stdin, logger)
	if err != nil {
		return fmt.Errorf("parsing target: %w", err)
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*source),
		differ.WithTargetParsed(*target),
		differ.WithRenameDetection(!flags.NoRenames),
		differ.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("comparing documents: %w", err)
	}

	out := stdout
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{sourcePath, targetPath}); err != nil {
			return err
		}
		f, err := os.OpenFile(flags.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.OwnerReadWrite)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeDiff(out, result, flags); err != nil {
		return err
	}

	if flags.TraceUnmatched {
		traceUnmatched(stderr, result, source.Document, target.Document)
	}

	if result.HasChanges() {
		return ErrDifferences
	}
	return nil
}

func writeDiff(w io.Writer, result *differ.DiffResult, flags *DiffFlags) error {
	switch flags.Format {
	case FormatJSON, FormatYAML:
		return OutputStructured(w, result, flags.Format)
	}

	format := report.FormatText
	if flags.Format == FormatMarkdown {
		format = report.FormatMarkdown
	}
	return report.Render(w, result,
		report.WithFormat(format),
		report.WithDetail(report.Detail(flags.Detail)),
		report.WithColor(!flags.NoColor && cliutil.IsTerminal(w)),
	)
}

// traceUnmatched prints the reference chains of every schema that rename
// detection could not pair, looking removed schemas up in the source and new
// ones in the target.
func traceUnmatched(w io.Writer, result *differ.DiffResult, source, target parser.Document) {
	removed, added := result.UnmatchedSchemas()
	if len(removed)+len(added) == 0 {
		cliutil.Writef(w, "All schemas matched.\n")
		return
	}
	writeAncestry(w, "Unmatched removed schemas (source)", differ.TraceAncestry(source, removed))
	writeAncestry(w, "Unmatched new schemas (target)", differ.TraceAncestry(target, added))
}

func writeAncestry(w io.Writer, heading string, ancestry []differ.Ancestry) {
	if len(ancestry) == 0 {
		return
	}
	cliutil.Writef(w, "%s:\n", heading)
	for _, a := range ancestry {
		cliutil.Writef(w, "  %s\n", a.Schema)
		for _, chain := range a.FormatChains() {
			cliutil.Writef(w, "    %s\n", chain)
		}
		if a.Truncated {
			cliutil.Writef(w, "    ... (more than %d chains)\n", differ.MaxAncestryChains)
		}
	}
}
