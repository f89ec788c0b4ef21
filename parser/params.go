package parser

import (
	"github.com/sevenwiki/sevenmark/ast"
)

// parseParams matches the `#ident="quoted"` sequence described in spec
// §4.1 "Parameters": zero or more entries, terminated by an optional
// `||` and then whitespace. It always succeeds (an empty parameter list
// is valid); ok is false only if a `#ident="` was opened but never
// closed, in which case the caller should treat the whole construct as
// unmatched.
func parseParams(in *input, ctx *context) (*ast.Parameters, bool) {
	params := ast.NewParameters()
	for {
		checkpoint := in.save()
		skipInlineSpace(in)
		if !in.hasPrefix("#") {
			in.restore(checkpoint)
			break
		}
		entryStart := in.save()
		in.advance(1) // '#'
		name := scanIdent(in)
		if name == "" || !in.consumePrefix("=") || !in.consumePrefix(`"`) {
			in.restore(checkpoint)
			break
		}
		value := parseParamValueNodes(in, ctx)
		if !in.consumePrefix(`"`) {
			in.restore(entryStart)
			return nil, false
		}
		params.Set(name, in.spanFrom(entryStart), value)
	}

	checkpoint := in.save()
	skipInlineSpace(in)
	if !in.consumePrefix("||") {
		in.restore(checkpoint)
	} else {
		skipInlineSpace(in)
	}
	return params, true
}

func skipInlineSpace(in *input) {
	for {
		b, ok := in.peek()
		if !ok || (b != ' ' && b != '\t') {
			return
		}
		in.advance(1)
	}
}

func scanIdent(in *input) string {
	start := in.save()
	for {
		b, ok := in.peek()
		if !ok || !isIdentByte(b) {
			break
		}
		in.advance(1)
	}
	return in.src[start:in.cursor]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// parseParamValueNodes parses a parameter's quoted value as a
// restricted element sequence: text, escape, variable references, and
// mentions; brackets are literal text here (spec §4.1 "Values are
// parsed as AST children using a restricted element parser: text,
// escape, variables, mentions, brackets as literals").
func parseParamValueNodes(in *input, ctx *context) []*ast.Node {
	var nodes []*ast.Node
	for !in.eof() {
		b, _ := in.peek()
		if b == '"' {
			break
		}
		switch b {
		case '\\':
			if n, ok := tryEscape(in); ok {
				nodes = append(nodes, n)
				continue
			}
		case '<':
			if n, ok := tryMention(in); ok {
				nodes = append(nodes, n)
				continue
			}
		case '[':
			if n, ok := tryVariableMacro(in); ok {
				nodes = append(nodes, n)
				continue
			}
		}
		nodes = append(nodes, textRunStop(in, func(b byte) bool {
			return b == '"' || b == '\\' || b == '<' || b == '['
		}))
	}
	return nodes
}
