// Package commands provides CLI command handlers for oasdelta.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/erraggy/oasdelta/internal/cliutil"
	"github.com/erraggy/oasdelta/parser"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Detail level constants
const (
	DetailSummary = "summary"
	DetailVerbose = "verbose"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

var (
	validFormats = []string{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
	validDetails = []string{DetailSummary, DetailVerbose}
)

// ValidateOutputFormat returns an error unless format is text, markdown, json or yaml.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s, %s",
			format, FormatText, FormatMarkdown, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateDetail returns an error unless detail is summary or verbose.
func ValidateDetail(detail string) error {
	if !slices.Contains(validDetails, detail) {
		return fmt.Errorf("invalid detail '%s'. Valid levels: %s, %s", detail, DetailSummary, DetailVerbose)
	}
	return nil
}

// OutputStructured writes data to w as indented JSON or YAML.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
		bytes = append(bytes, '\n')
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	if _, err := w.Write(bytes); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}

// ValidateOutputPath rejects an output path that would overwrite one of the
// inputs or is a symlink. Overwriting any other existing file only warns.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	info, err := os.Lstat(absOutputPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", outputPath)
	}
	cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	return nil
}

// FormatSpecPath returns a display-friendly path for a document argument.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// loadDocument parses the document named by specPath, reading stdin for "-".
func loadDocument(specPath string, stdin io.Reader, logger parser.Logger) (*parser.ParseResult, error) {
	if specPath == StdinFilePath {
		return parser.ParseWithOptions(
			parser.WithReader(stdin),
			parser.WithSourceName(FormatSpecPath(specPath)),
			parser.WithLogger(logger),
		)
	}
	return parser.ParseWithOptions(
		parser.WithFilePath(specPath),
		parser.WithLogger(logger),
	)
}
