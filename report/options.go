package report

import (
	"fmt"

	"github.com/erraggy/oasdelta/oaserrors"
)

// Format selects the output syntax.
type Format string

const (
	// FormatText renders plain text with +/-/~ markers.
	FormatText Format = "text"
	// FormatMarkdown renders Markdown headings, bullet lists and tables.
	FormatMarkdown Format = "markdown"
)

// Detail selects how much of each change is shown.
type Detail string

const (
	// DetailSummary lists the added, removed, modified and renamed names per section.
	DetailSummary Detail = "summary"
	// DetailVerbose also prints every nested change with its old and new value.
	DetailVerbose Detail = "verbose"
)

// Option configures Render.
type Option func(*renderConfig) error

type renderConfig struct {
	format Format
	detail Detail
	color  bool
}

// WithFormat sets the output syntax. Default: FormatText.
func WithFormat(f Format) Option {
	return func(cfg *renderConfig) error {
		switch f {
		case FormatText, FormatMarkdown:
			cfg.format = f
			return nil
		}
		return &oaserrors.ConfigError{
			Option:  "format",
			Value:   f,
			Message: fmt.Sprintf("must be %q or %q", FormatText, FormatMarkdown),
		}
	}
}

// WithDetail sets the detail level. Default: DetailSummary.
func WithDetail(d Detail) Option {
	return func(cfg *renderConfig) error {
		switch d {
		case DetailSummary, DetailVerbose:
			cfg.detail = d
			return nil
		}
		return &oaserrors.ConfigError{
			Option:  "detail",
			Value:   d,
			Message: fmt.Sprintf("must be %q or %q", DetailSummary, DetailVerbose),
		}
	}
}

// WithColor enables ANSI colors for FormatText. It has no effect on Markdown.
// Default: false.
func WithColor(enabled bool) Option {
	return func(cfg *renderConfig) error {
		cfg.color = enabled
		return nil
	}
}

func applyOptions(opts ...Option) (*renderConfig, error) {
	cfg := &renderConfig{
		format: FormatText,
		detail: DetailSummary,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
