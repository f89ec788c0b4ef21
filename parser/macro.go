package parser

import (
	"strings"

	"github.com/sevenwiki/sevenmark/ast"
)

// tryMacro matches the six bracket macros (spec §4.1, §6): [now], [br],
// [null], [fn], [age(YYYY-MM-DD)], [var(id)].
func tryMacro(in *input, ctx *context) (*ast.Node, bool) {
	if n, ok := tryFixedMacro(in, "[now]", ast.KindTimeNow); ok {
		return n, true
	}
	if n, ok := tryFixedMacro(in, "[br]", ast.KindHardBreak); ok {
		return n, true
	}
	if n, ok := tryFixedMacro(in, "[null]", ast.KindNull); ok {
		return n, true
	}
	if n, ok := tryFootnoteRefMacro(in, ctx); ok {
		return n, true
	}
	if n, ok := tryAgeMacro(in); ok {
		return n, true
	}
	if n, ok := tryVariableMacro(in); ok {
		return n, true
	}
	return nil, false
}

func tryFixedMacro(in *input, literal string, kind ast.Kind) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix(literal) {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: kind, Span: in.spanFrom(start)}, true
}

// tryFootnoteRefMacro matches `[fn]` wherever it appears (spec §3.3
// "FootnoteRef"). It does not check for an enclosing footnote.
func tryFootnoteRefMacro(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[fn]") {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindFootnoteRef, Span: in.spanFrom(start)}, true
}

// tryAgeMacro matches `[age(YYYY-MM-DD)]`.
func tryAgeMacro(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[age(") {
		in.restore(start)
		return nil, false
	}
	idx := strings.IndexByte(in.remaining(), ')')
	if idx < 0 {
		in.restore(start)
		return nil, false
	}
	date := in.remaining()[:idx]
	in.advance(idx + 1)
	if !in.consumePrefix("]") {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindAge, Span: in.spanFrom(start), Value: date}, true
}

// tryVariableMacro matches `[var(id)]`.
func tryVariableMacro(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[var(") {
		in.restore(start)
		return nil, false
	}
	idx := strings.IndexByte(in.remaining(), ')')
	if idx < 0 {
		in.restore(start)
		return nil, false
	}
	name := in.remaining()[:idx]
	in.advance(idx + 1)
	if !in.consumePrefix("]") {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindVariable, Span: in.spanFrom(start), Name: name}, true
}
