// Package oaserrors provides structured error types for the oastransform library.
//
// Import path: github.com/erraggy/oastransform/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between an input that could not be read, a rule
// that failed while mutating a document, and an output that could not be written.
//
// # Error Types
//
//   - [ParseError]: unreadable input, invalid JSON/YAML, missing OpenAPI version
//   - [TransformError]: a transformation rule failed on a node
//   - [OutputError]: serialization or write failure
//   - [ResourceLimitError]: resource exhaustion (alias expansion, depth)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrTransform]: Matches any [TransformError]
//   - [ErrOutput]: Matches any [OutputError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := transformer.TransformWithOptions(transformer.WithFilePath("api.json"))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // input could not be read or is not an OpenAPI document
//	}
//
// Extract error details with errors.As():
//
//	var tErr *oaserrors.TransformError
//	if errors.As(err, &tErr) {
//	    fmt.Printf("rule %s failed at %s\n", tErr.Rule, tErr.Path)
//	}
//
// # Error Chaining
//
// Error types with a Cause field support chaining via Unwrap(), so the root
// cause can be matched through the standard error chain:
//
//	var pErr *oaserrors.ParseError
//	if errors.As(err, &pErr) && errors.Is(pErr.Cause, fs.ErrNotExist) {
//	    // the input file does not exist
//	}
//
// All errors are terminal for a run: the transformer never retries and never
// writes partial output.
package oaserrors
