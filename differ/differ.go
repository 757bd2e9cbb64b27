package differ

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/internal/options"
	"github.com/erraggy/oasdelta/oaserrors"
	"github.com/erraggy/oasdelta/parser"
)

// DiffResult contains the results of comparing two documents.
type DiffResult struct {
	// SourcePath is where the source document was loaded from
	SourcePath string `json:"source_path" yaml:"source_path"`
	// SourceVersion is the source document's openapi/swagger version string
	SourceVersion string `json:"source_version" yaml:"source_version"`
	// SourceStats contains statistical information about the source document
	SourceStats parser.DocumentStats `json:"source_stats" yaml:"source_stats"`
	// TargetPath is where the target document was loaded from
	TargetPath string `json:"target_path" yaml:"target_path"`
	// TargetVersion is the target document's openapi/swagger version string
	TargetVersion string `json:"target_version" yaml:"target_version"`
	// TargetStats contains statistical information about the target document
	TargetStats parser.DocumentStats `json:"target_stats" yaml:"target_stats"`

	// InfoChanges maps an info key (title, version, ...) to its change
	InfoChanges map[string]*LeafChange `json:"info_changes" yaml:"info_changes"`
	// NewPaths are paths only in the target, sorted
	NewPaths []string `json:"new_paths" yaml:"new_paths"`
	// RemovedPaths are paths only in the source, sorted
	RemovedPaths []string `json:"removed_paths" yaml:"removed_paths"`
	// ModifiedPaths maps a path present on both sides to its operation diff
	ModifiedPaths map[string]*PathDiff `json:"modified_paths" yaml:"modified_paths"`
	// NewComponents maps a component category to the names only in the target
	NewComponents map[string][]string `json:"new_components" yaml:"new_components"`
	// RemovedComponents maps a component category to the names only in the source
	RemovedComponents map[string][]string `json:"removed_components" yaml:"removed_components"`
	// ModifiedComponents maps a component category to per-name diffs. Renamed
	// schemas are stored here under their old name with Rename set.
	ModifiedComponents map[string]map[string]Node `json:"modified_components" yaml:"modified_components"`
	// RenamedComponents maps a component category to old name -> new name
	RenamedComponents map[string]map[string]string `json:"renamed_components" yaml:"renamed_components"`
	// TagsChanges is the tag set diff keyed by tag name
	TagsChanges *SetChange `json:"tags_changes,omitempty" yaml:"tags_changes,omitempty"`
	// ServersChanges is the server set diff keyed by url
	ServersChanges *SetChange `json:"servers_changes,omitempty" yaml:"servers_changes,omitempty"`
}

func newDiffResult(source, target parser.ParseResult) *DiffResult {
	return &DiffResult{
		SourcePath:         source.SourcePath,
		SourceVersion:      source.Version,
		SourceStats:        source.Stats,
		TargetPath:         target.SourcePath,
		TargetVersion:      target.Version,
		TargetStats:        target.Stats,
		InfoChanges:        make(map[string]*LeafChange),
		NewPaths:           []string{},
		RemovedPaths:       []string{},
		ModifiedPaths:      make(map[string]*PathDiff),
		NewComponents:      make(map[string][]string),
		RemovedComponents:  make(map[string][]string),
		ModifiedComponents: make(map[string]map[string]Node),
		RenamedComponents:  make(map[string]map[string]string),
	}
}

// HasChanges reports whether the documents differ anywhere.
func (r *DiffResult) HasChanges() bool {
	if len(r.InfoChanges) > 0 || len(r.NewPaths) > 0 || len(r.RemovedPaths) > 0 || len(r.ModifiedPaths) > 0 {
		return true
	}
	if !r.TagsChanges.Empty() || !r.ServersChanges.Empty() {
		return true
	}
	for _, renames := range r.RenamedComponents {
		if len(renames) > 0 {
			return true
		}
	}
	for _, category := range ComponentCategories {
		if len(r.NewComponents[category]) > 0 || len(r.RemovedComponents[category]) > 0 ||
			len(r.ModifiedComponents[category]) > 0 {
			return true
		}
	}
	return false
}

// UnmatchedSchemas returns the schema names still reported as removed and
// as new, each sorted. After rename detection these are the schemas no
// rename could account for.
func (r *DiffResult) UnmatchedSchemas() (removed, added []string) {
	removed = sortedCopy(r.RemovedComponents[ComponentSchemas])
	added = sortedCopy(r.NewComponents[ComponentSchemas])
	return removed, added
}

// Differ handles document comparison
type Differ struct {
	// DetectRenames enables the schema rename detection pass
	DetectRenames bool
	// Logger receives debug output from rename detection. Nil means no logging.
	Logger parser.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		DetectRenames: true,
		Logger:        parser.NopLogger{},
	}
}

// Diff loads and compares the documents at sourcePath and targetPath.
func (d *Differ) Diff(sourcePath, targetPath string) (*DiffResult, error) {
	source, err := parser.ParseWithOptions(parser.WithFilePath(sourcePath), parser.WithLogger(d.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	target, err := parser.ParseWithOptions(parser.WithFilePath(targetPath), parser.WithLogger(d.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to parse target: %w", err)
	}
	return d.DiffParsed(*source, *target)
}

// DiffParsed compares two already loaded documents. The documents are not
// modified.
//
// A document whose shape contradicts the OpenAPI layout where a mapping or
// list is required (for example a string under paths) causes a panic naming
// the offending location.
func (d *Differ) DiffParsed(source, target parser.ParseResult) (*DiffResult, error) {
	if source.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "source", Message: "source document is empty"}
	}
	if target.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "target", Message: "target document is empty"}
	}

	result := newDiffResult(source, target)
	sourceRoot, targetRoot := map[string]any(source.Document), map[string]any(target.Document)

	c := newComparator()
	defer c.release()

	c.info(c.mapAt(sourceRoot, "info"), c.mapAt(targetRoot, "info"), result)
	c.paths(c.mapAt(sourceRoot, "paths"), c.mapAt(targetRoot, "paths"), result)

	sourceTags, targetTags := c.listAt(sourceRoot, "tags"), c.listAt(targetRoot, "tags")
	c.path.Push("tags")
	result.TagsChanges = c.tags(sourceTags, targetTags)
	c.path.Pop()

	sourceServers, targetServers := c.listAt(sourceRoot, "servers"), c.listAt(targetRoot, "servers")
	c.path.Push("servers")
	result.ServersChanges = c.servers(sourceServers, targetServers)
	c.path.Pop()

	sourceComponents, targetComponents := c.mapAt(sourceRoot, "components"), c.mapAt(targetRoot, "components")
	c.path.Push("components")
	c.components(sourceComponents, targetComponents, result)
	c.path.Pop()

	if d.DetectRenames {
		detectRenames(result, source.Document, target.Document, d.Logger)
	}
	return result, nil
}

func (c *comparator) paths(source, target map[string]any, result *DiffResult) {
	c.path.Push("paths")
	defer c.path.Pop()

	diff := c.set(source, target, (*comparator).pathItemItem)
	if diff == nil {
		return
	}
	result.NewPaths = nonNil(diff.New)
	result.RemovedPaths = nonNil(diff.Removed)
	for _, path := range maputil.SortedKeys(diff.Modified) {
		result.ModifiedPaths[path] = diff.Modified[path].(*PathDiff)
	}
}

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceParsed   *parser.ParseResult
	targetFilePath *string
	targetParsed   *parser.ParseResult

	detectRenames bool
	logger        parser.Logger
}

// DiffWithOptions compares two documents using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("api-v1.yaml"),
//	    differ.WithTargetFilePath("api-v2.yaml"),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		DetectRenames: cfg.detectRenames,
		Logger:        cfg.logger,
	}

	var source parser.ParseResult
	if cfg.sourceFilePath != nil {
		sourceResult, err := parser.ParseWithOptions(parser.WithFilePath(*cfg.sourceFilePath), parser.WithLogger(d.Logger))
		if err != nil {
			return nil, fmt.Errorf("failed to parse source: %w", err)
		}
		source = *sourceResult
	} else {
		source = *cfg.sourceParsed
	}

	var target parser.ParseResult
	if cfg.targetFilePath != nil {
		targetResult, err := parser.ParseWithOptions(parser.WithFilePath(*cfg.targetFilePath), parser.WithLogger(d.Logger))
		if err != nil {
			return nil, fmt.Errorf("failed to parse target: %w", err)
		}
		target = *targetResult
	} else {
		target = *cfg.targetParsed
	}

	return d.DiffParsed(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{
		detectRenames: true,
		logger:        parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := checkInputCount("source", cfg.sourceFilePath != nil, cfg.sourceParsed != nil,
		"use WithSourceFilePath or WithSourceParsed"); err != nil {
		return nil, err
	}
	if err := checkInputCount("target", cfg.targetFilePath != nil, cfg.targetParsed != nil,
		"use WithTargetFilePath or WithTargetParsed"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkInputCount(which string, fromFile, fromParsed bool, hint string) error {
	return options.RequireOne(
		&oaserrors.ConfigError{Option: which, Message: fmt.Sprintf("must specify a %s (%s)", which, hint)},
		&oaserrors.ConfigError{Option: which, Message: "must specify exactly one " + which},
		fromFile, fromParsed,
	)
}

func sortedCopy(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return nonNil(out)
}

// WithSourceFilePath specifies a file path as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the source document
func WithSourceParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceParsed = &result
		return nil
	}
}

// WithTargetFilePath specifies a file path as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the target document
func WithTargetParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.targetParsed = &result
		return nil
	}
}

// WithRenameDetection enables or disables schema rename detection
// Default: true
func WithRenameDetection(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.detectRenames = enabled
		return nil
	}
}

// WithLogger sets the logger for parsing and rename detection.
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(cfg *diffConfig) error {
		if l == nil {
			l = parser.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
