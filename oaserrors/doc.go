// Package oaserrors provides structured error types for oasdelta.
//
// Import path: github.com/erraggy/oasdelta/oaserrors
//
// # Error Types
//
//   - [ParseError]: a document could not be read or decoded
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Errors returned by the parser and differ may be wrapped with
// fmt.Errorf("...: %w", err); errors.Is and errors.As see through the
// wrapping:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("v1.yaml"),
//	    differ.WithTargetFilePath("v2.yaml"),
//	)
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Println("cannot load", parseErr.Path)
//	}
package oaserrors
