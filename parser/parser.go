package parser

import (
	"strings"

	"github.com/sevenwiki/sevenmark/ast"
)

// Option configures a single Parse call. The zero value of every option
// reproduces spec.md's defaults.
type Option func(*context)

// WithMaxRecursionDepth overrides the default nesting limit of 16 (spec
// §4.1 "max_recursion_depth | default 16"). It is the one tunable the
// core exposes; everything else about Parse's behavior is fixed by
// spec.md.
func WithMaxRecursionDepth(n int) Option {
	return func(c *context) {
		if n > 0 {
			c.maxRecursionDepth = n
		}
	}
}

// WithRecursionOverflowHook registers a callback invoked each time a
// nested construct is rejected for exceeding the recursion depth limit.
// Parse itself never surfaces this as an error (spec §4.1: overflow
// degrades to literal text like any other non-match); the hook exists
// so an instrumentation layer can count overflows without changing
// Parse's return shape.
func WithRecursionOverflowHook(fn func()) Option {
	return func(c *context) { c.onRecursionOverflow = fn }
}

// Parse turns source into a document-order slice of top-level nodes
// (spec §4.1 "Parser driver", §6 "Parser API"). It never fails: any
// construct it cannot make sense of degrades to literal text or a
// terminal Error node.
//
// CRLF is normalised to LF first so that byte offsets are stable across
// platforms (spec §4.1 "CRLF is normalised to LF before parsing").
// Callers that need spans consistent with CRLF-authored source should
// perform the same normalisation before comparing offsets.
func Parse(source string, opts ...Option) []*ast.Node {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	in := newInput(normalized)
	ctx := newContext([]byte(normalized))
	for _, opt := range opts {
		opt(ctx)
	}

	nodes := parseElements(in, ctx, nil)

	if !in.eof() {
		// Defensive: parseElement is constructed to always consume at
		// least one byte, so this should be unreachable. Kept per spec
		// §4.1 "any unconsumed tail becomes a single Error node."
		start := in.currentTokenStart()
		tail := in.remaining()
		in.advance(len(tail))
		nodes = append(nodes, &ast.Node{Kind: ast.KindError, Span: in.spanFrom(start), Value: tail})
	}

	return nodes
}
