package parser

import (
	"io"

	"github.com/erraggy/oasdelta/internal/options"
	"github.com/erraggy/oasdelta/oaserrors"
)

// Option configures a parse operation.
type Option func(*parseConfig) error

type parseConfig struct {
	// exactly one input source is set
	filePath *string
	reader   io.Reader
	bytes    []byte

	logger     Logger
	sourceName *string
}

// ParseWithOptions loads a document using functional options.
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(logger),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	p := &Parser{Logger: cfg.logger}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	err := options.RequireOne(
		&oaserrors.ConfigError{Option: "input", Message: "must specify an input source (use WithFilePath, WithReader, or WithBytes)"},
		&oaserrors.ConfigError{Option: "input", Message: "must specify exactly one input source"},
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath reads the document from a local file.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader reads the document from r.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes decodes the document from data.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath, which is useful for
// reader and byte inputs that have a meaningful name elsewhere.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = loggerOrNop(l)
		return nil
	}
}
