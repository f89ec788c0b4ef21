package parser

import (
	"strconv"
	"strings"

	"github.com/sevenwiki/sevenmark/expr"
)

// parseCondition implements the expression grammar of spec §4.2, lowest
// precedence to highest: or, and, not, comparison, operand. Whitespace
// is permitted between all tokens.
func parseCondition(in *input, ctx *context) (*expr.Expression, bool) {
	return parseOr(in, ctx)
}

func parseOr(in *input, ctx *context) (*expr.Expression, bool) {
	left, ok := parseAnd(in, ctx)
	if !ok {
		return nil, false
	}
	for {
		checkpoint := in.save()
		skipInlineSpace(in)
		opStart := in.currentTokenStart()
		if !in.consumePrefix("||") {
			in.restore(checkpoint)
			break
		}
		opSpan := in.spanFrom(opStart)
		skipInlineSpace(in)
		right, ok := parseAnd(in, ctx)
		if !ok {
			in.restore(checkpoint)
			break
		}
		left = &expr.Expression{Kind: expr.KindOr, Left: left, Right: right, OpSpan: opSpan}
	}
	return left, true
}

func parseAnd(in *input, ctx *context) (*expr.Expression, bool) {
	left, ok := parseNot(in, ctx)
	if !ok {
		return nil, false
	}
	for {
		checkpoint := in.save()
		skipInlineSpace(in)
		opStart := in.currentTokenStart()
		if !in.consumePrefix("&&") {
			in.restore(checkpoint)
			break
		}
		opSpan := in.spanFrom(opStart)
		skipInlineSpace(in)
		right, ok := parseNot(in, ctx)
		if !ok {
			in.restore(checkpoint)
			break
		}
		left = &expr.Expression{Kind: expr.KindAnd, Left: left, Right: right, OpSpan: opSpan}
	}
	return left, true
}

// parseNot matches at most one leading `!` (spec §4.2 "exactly one;
// nested negation requires !(!x)"); a negative lookahead keeps it from
// swallowing the `!` of a `!=` comparison operator.
func parseNot(in *input, ctx *context) (*expr.Expression, bool) {
	checkpoint := in.save()
	if in.consumePrefix("!") {
		if b, ok := in.peek(); !ok || b != '=' {
			operand, ok := parseComparison(in, ctx)
			if ok {
				return &expr.Expression{Kind: expr.KindNot, Operand: operand}, true
			}
		}
		in.restore(checkpoint)
	}
	return parseComparison(in, ctx)
}

func parseComparison(in *input, ctx *context) (*expr.Expression, bool) {
	left, ok := parseOperand(in, ctx)
	if !ok {
		return nil, false
	}
	checkpoint := in.save()
	skipInlineSpace(in)
	opStart := in.currentTokenStart()
	op, found := tryCompareOp(in)
	if !found {
		in.restore(checkpoint)
		return left, true
	}
	opSpan := in.spanFrom(opStart)
	skipInlineSpace(in)
	right, ok := parseOperand(in, ctx)
	if !ok {
		in.restore(checkpoint)
		return left, true
	}
	return &expr.Expression{Kind: expr.KindComparison, Op: op, Left: left, Right: right, OpSpan: opSpan}, true
}

func tryCompareOp(in *input) (expr.CompareOp, bool) {
	switch {
	case in.consumePrefix("=="):
		return expr.OpEq, true
	case in.consumePrefix("!="):
		return expr.OpNe, true
	case in.consumePrefix("<="):
		return expr.OpLe, true
	case in.consumePrefix(">="):
		return expr.OpGe, true
	case in.consumePrefix("<"):
		return expr.OpLt, true
	case in.consumePrefix(">"):
		return expr.OpGt, true
	default:
		return 0, false
	}
}

// parseOperand dispatches to a parenthesised group, a function call
// (int/len/str), null, true/false, a "string" literal, an optionally-
// signed integer, or an AST variable/element (spec §4.2 "operand_
// parser").
func parseOperand(in *input, ctx *context) (*expr.Expression, bool) {
	skipInlineSpace(in)
	start := in.currentTokenStart()

	if in.consumePrefix("(") {
		skipInlineSpace(in)
		inner, ok := parseOr(in, ctx)
		if !ok {
			return nil, false
		}
		skipInlineSpace(in)
		if !in.consumePrefix(")") {
			return nil, false
		}
		return &expr.Expression{Kind: expr.KindGroup, Span: in.spanFrom(start), Operand: inner}, true
	}

	for _, fn := range []struct {
		word string
		fn   expr.Func
	}{
		{"int", expr.FuncInt},
		{"len", expr.FuncLen},
		{"str", expr.FuncStr},
	} {
		if consumeWord(in, fn.word) {
			skipInlineSpace(in)
			if !in.consumePrefix("(") {
				return nil, false
			}
			skipInlineSpace(in)
			arg, ok := parseOr(in, ctx)
			if !ok {
				return nil, false
			}
			skipInlineSpace(in)
			if !in.consumePrefix(")") {
				return nil, false
			}
			return &expr.Expression{Kind: expr.KindFunctionCall, Span: in.spanFrom(start), Func: fn.fn, Arg: arg}, true
		}
	}

	if consumeWord(in, "null") {
		return &expr.Expression{Kind: expr.KindNull, Span: in.spanFrom(start)}, true
	}
	if consumeWord(in, "true") {
		return &expr.Expression{Kind: expr.KindBoolLiteral, Span: in.spanFrom(start), Bool: true}, true
	}
	if consumeWord(in, "false") {
		return &expr.Expression{Kind: expr.KindBoolLiteral, Span: in.spanFrom(start), Bool: false}, true
	}

	if in.consumePrefix(`"`) {
		idx := strings.IndexByte(in.remaining(), '"')
		if idx < 0 {
			return nil, false
		}
		str := in.remaining()[:idx]
		in.advance(idx + 1)
		return &expr.Expression{Kind: expr.KindStringLiteral, Span: in.spanFrom(start), Str: str}, true
	}

	if n, ok := scanSignedInteger(in); ok {
		return &expr.Expression{Kind: expr.KindNumberLiteral, Span: in.spanFrom(start), Num: n}, true
	}

	// AST variable/element (spec §3.4 "Element — embeds an AST node").
	if n, ok := tryVariableMacro(in); ok {
		return &expr.Expression{Kind: expr.KindElement, Span: n.Span, Element: n}, true
	}
	if n, ok := tryMention(in); ok {
		return &expr.Expression{Kind: expr.KindElement, Span: n.Span, Element: n}, true
	}
	node := textRunStop(in, func(b byte) bool {
		return b == ')' || b == ' ' || b == '\t' || b == '\n'
	})
	if node.Value == "" {
		return nil, false
	}
	return &expr.Expression{Kind: expr.KindElement, Span: node.Span, Element: node}, true
}

// consumeWord consumes word if present and not merely a prefix of a
// longer identifier.
func consumeWord(in *input, word string) bool {
	checkpoint := in.save()
	if !in.consumePrefix(word) {
		return false
	}
	if b, ok := in.peek(); ok && isIdentByte(b) {
		in.restore(checkpoint)
		return false
	}
	return true
}

func scanSignedInteger(in *input) (int64, bool) {
	start := in.save()
	if b, ok := in.peek(); ok && b == '-' {
		in.advance(1)
	}
	digitsStart := in.save()
	for {
		b, ok := in.peek()
		if !ok || b < '0' || b > '9' {
			break
		}
		in.advance(1)
	}
	if in.save() == digitsStart {
		in.restore(start)
		return 0, false
	}
	n, err := strconv.ParseInt(in.src[start:in.cursor], 10, 64)
	if err != nil {
		in.restore(start)
		return 0, false
	}
	return n, true
}
