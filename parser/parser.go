package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasdelta/oaserrors"
	"go.yaml.in/yaml/v4"
)

// SourceFormat is the serialization format of a source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was YAML.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was JSON.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult is a loaded document plus information about where it came from.
// Treat it as read-only: the differ shares the Document maps between results.
type ParseResult struct {
	// SourcePath is the file the document was read from. For readers and byte
	// slices it is a synthetic name ending in .yaml or .json.
	SourcePath string
	// SourceFormat is the detected serialization format.
	SourceFormat SourceFormat
	// Version is the "openapi" (or "swagger") version string, if any.
	Version string
	// Document is the decoded document tree.
	Document Document
	// LoadTime is the time spent reading the source.
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes.
	SourceSize int64
	// Stats summarizes the document.
	Stats DocumentStats
}

// Parser loads documents. The zero value is ready to use.
type Parser struct {
	// Logger receives debug output. Nil means NopLogger.
	Logger Logger
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{Logger: NopLogger{}}
}

// Parse reads and decodes the file at specPath.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(specPath)
	loadTime := time.Since(start)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: specPath, Message: "failed to read file", Cause: err}
	}

	res, err := p.decode(data, specPath)
	if err != nil {
		return nil, err
	}
	res.SourcePath = specPath
	res.LoadTime = loadTime
	if format := detectFormatFromPath(specPath); format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader reads r to EOF and decodes it.
// SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(start)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "reader", Message: "failed to read data", Cause: err}
	}
	res, err := p.decode(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseReader", res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes decodes data.
// SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.decode(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseBytes", res.SourceFormat)
	return res, nil
}

func (p *Parser) decode(data []byte, source string) (*ParseResult, error) {
	log := loggerOrNop(p.Logger)

	// JSON is a subset of YAML, so one decoder serves both formats.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to parse YAML/JSON", Cause: err}
	}
	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("document root must be a mapping, got %s", describe(raw)),
		}
	}

	doc := Document(root)
	res := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		Version:      doc.Version(),
		Document:     doc,
		SourceSize:   int64(len(data)),
		Stats:        doc.Stats(),
	}
	log.Debug("document decoded",
		"source", source,
		"format", string(res.SourceFormat),
		"version", res.Version,
		"paths", res.Stats.PathCount,
		"schemas", res.Stats.SchemaCount,
	)
	return res, nil
}

// normalize converts the decoder's generic output into map[string]any and
// []any all the way down. Non-string keys (e.g. unquoted status codes) are
// stringified.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

func describe(v any) string {
	if v == nil {
		return "an empty document"
	}
	return fmt.Sprintf("%T", v)
}

func syntheticName(prefix string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return prefix + ".json"
	}
	return prefix + ".yaml"
}
