// Package derrors defines the error values used across the parser and
// transformer to categorize the failure semantics described in spec §7.
package derrors

import (
	"errors"
	"fmt"
)

//lint:file-ignore ST1012 prefixing error values with Err would stutter

var (
	// RecursionDepthExceeded indicates that a sub-parser exceeded the
	// configured maximum recursion depth. It never escapes the parser:
	// the sub-parser that hit it fails, and the driver falls back to
	// emitting the unconsumed bytes as literal text (spec §4.1, §4.6).
	RecursionDepthExceeded = errors.New("recursion depth exceeded")

	// LookupFailure indicates that the external document store failed a
	// batched fetch or existence check. It is fatal to the whole
	// preprocess/postprocess call (spec §4.6, §7).
	LookupFailure = errors.New("document store lookup failed")

	// ParseFailure is never returned by this module; parse failures are
	// represented in the AST as Error nodes, not as Go errors (spec §7).
	// It exists so collaborators can refer to the category by name.
	ParseFailure = errors.New("parse failure")
)

// Add adds context to the error. The result cannot be unwrapped to recover
// the original error. It does nothing when *errp == nil.
//
// Example:
//
//	defer derrors.Add(&err, "parseTable(%d)", start)
//
// See Wrap for an equivalent function that allows the result to be
// unwrapped.
func Add(errp *error, format string, args ...any) {
	if *errp != nil {
		*errp = fmt.Errorf("%s: %v", fmt.Sprintf(format, args...), *errp)
	}
}

// Wrap adds context to the error and allows unwrapping the result to
// recover the original error.
//
// Example:
//
//	defer derrors.Wrap(&err, "Preprocess(doc %s)", ref)
func Wrap(errp *error, format string, args ...any) {
	if *errp != nil {
		*errp = fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), *errp)
	}
}
