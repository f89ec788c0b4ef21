package parser

import (
	"strings"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/span"
)

// parseElement dispatches on the next byte (spec §4.1 dispatch table)
// and always returns a node: every bucket ends in a literal fallback,
// so forward progress is guaranteed even when every structured
// alternative fails (depth exceeded, malformed delimiter, …).
func parseElement(in *input, ctx *context) *ast.Node {
	b, ok := in.peek()
	if !ok {
		return nil
	}

	switch b {
	case '\\':
		if n, ok := tryEscape(in); ok {
			return n
		}
		return literalByte(in)

	case '/':
		if n, ok := tryBlockComment(in); ok {
			return n
		}
		if n, ok := tryLineComment(in); ok {
			return n
		}
		return literalByte(in)

	case '{':
		if n, ok := tryBraceBlock(in, ctx); ok {
			return n
		}
		return literalByte(in)

	case '[':
		if n, ok := tryBracketConstruct(in, ctx); ok {
			return n
		}
		return literalByte(in)

	case '#':
		if ctx.isAtLineStart(in.currentTokenStart()) {
			if n, ok := tryHeader(in, ctx); ok {
				return n
			}
		}
		return textRun(in)

	case '-':
		if ctx.isAtLineStart(in.currentTokenStart()) {
			if n, ok := tryHLine(in); ok {
				return n
			}
		}
		return textRun(in)

	case '*':
		if !ctx.insideBold {
			if n, ok := tryInlineStyle(in, ctx, "**", ast.KindBold, &ctx.insideBold); ok {
				return n
			}
		}
		if !ctx.insideItalic {
			if n, ok := tryInlineStyle(in, ctx, "*", ast.KindItalic, &ctx.insideItalic); ok {
				return n
			}
		}
		return literalByte(in)

	case '_':
		if !ctx.insideUnderline {
			if n, ok := tryInlineStyle(in, ctx, "__", ast.KindUnderline, &ctx.insideUnderline); ok {
				return n
			}
		}
		return literalByte(in)

	case '~':
		if !ctx.insideStrikethrough {
			if n, ok := tryInlineStyle(in, ctx, "~~", ast.KindStrikethrough, &ctx.insideStrikethrough); ok {
				return n
			}
		}
		return literalByte(in)

	case '^':
		if !ctx.insideSuperscript {
			if n, ok := tryInlineStyle(in, ctx, "^^", ast.KindSuperscript, &ctx.insideSuperscript); ok {
				return n
			}
		}
		return literalByte(in)

	case ',':
		if !ctx.insideSubscript {
			if n, ok := tryInlineStyle(in, ctx, ",,", ast.KindSubscript, &ctx.insideSubscript); ok {
				return n
			}
		}
		return literalByte(in)

	case '<':
		if n, ok := tryMention(in); ok {
			return n
		}
		return literalByte(in)

	case '\n':
		start := in.currentTokenStart()
		in.advance(1)
		return &ast.Node{Kind: ast.KindSoftBreak, Span: in.spanFrom(start)}

	default:
		return textRun(in)
	}
}

// parseElements runs parseElement until stop returns true or end of
// input, collecting the produced nodes. It is the building block behind
// both the top-level document loop and every delimited block body. When
// any enclosing scope was opened with with_depth_and_trim (spec §4.1,
// trim_depth > 0), leading and trailing whitespace is trimmed from the
// collected sequence — this is what lets Include,
// Category, and Redirect read a clean title out of `{{{#include  Foo
// }}}`-style incidental spacing.
func parseElements(in *input, ctx *context, stop func() bool) []*ast.Node {
	var nodes []*ast.Node
	for !in.eof() {
		if stop != nil && stop() {
			break
		}
		n := parseElement(in, ctx)
		if n == nil {
			break
		}
		nodes = append(nodes, n)
	}
	if ctx.isTrimming() {
		nodes = trimChildren(nodes)
	}
	return nodes
}

// trimChildren trims leading/trailing whitespace directly adjacent to
// the boundary of a child sequence: whitespace-only Text nodes at
// either end are dropped, and a boundary Text node's own leading or
// trailing whitespace is trimmed in place.
func trimChildren(nodes []*ast.Node) []*ast.Node {
	i := 0
	for i < len(nodes) && nodes[i].Kind == ast.KindText {
		trimmed := strings.TrimLeft(nodes[i].Value, " \t\n")
		if trimmed != "" {
			n := *nodes[i]
			n.Value = trimmed
			nodes[i] = &n
			break
		}
		i++
	}
	nodes = nodes[i:]

	j := len(nodes)
	for j > 0 && nodes[j-1].Kind == ast.KindText {
		trimmed := strings.TrimRight(nodes[j-1].Value, " \t\n")
		if trimmed != "" {
			n := *nodes[j-1]
			n.Value = trimmed
			nodes[j-1] = &n
			break
		}
		j--
	}
	return nodes[:j]
}

// literalByte emits the single byte at the cursor as a one-byte Text
// node — the universal fallback when no structured alternative matches.
func literalByte(in *input) *ast.Node {
	start := in.currentTokenStart()
	_, width := in.peekRune()
	if width == 0 {
		width = 1
	}
	value := in.remaining()[:width]
	in.advance(width)
	return &ast.Node{Kind: ast.KindText, Span: in.spanFrom(start), Value: value}
}

// textRun consumes the longest contiguous run of characters that do not
// introduce a more specific construct (spec §4.1 "other | text").
func textRun(in *input) *ast.Node {
	return textRunStop(in, nil)
}

// textRunStop is textRun with an extra per-byte stop predicate, used by
// restricted contexts like parameter values where brackets must not be
// treated as literal text runs.
func textRunStop(in *input, extraStop func(byte) bool) *ast.Node {
	start := in.currentTokenStart()
	for !in.eof() {
		b, _ := in.peek()
		if isSpecialByte(b) {
			break
		}
		if extraStop != nil && extraStop(b) {
			break
		}
		_, width := in.peekRune()
		if width == 0 {
			width = 1
		}
		in.advance(width)
	}
	if in.currentTokenStart() == start {
		// Nothing consumed (shouldn't happen given the dispatch table,
		// but guarantees the caller always makes forward progress).
		_, width := in.peekRune()
		if width == 0 {
			width = 1
		}
		in.advance(width)
	}
	return &ast.Node{Kind: ast.KindText, Span: in.spanFrom(start), Value: in.src[start:in.cursor]}
}

func isSpecialByte(b byte) bool {
	switch b {
	case '\\', '/', '{', '}', '[', ']', '#', '-', '*', '_', '~', '^', ',', '<', '\n':
		return true
	default:
		return false
	}
}

// tryEscape matches `\c` for any single character c (spec: "Escape |
// \c (any character)").
func tryEscape(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("\\") {
		in.restore(start)
		return nil, false
	}
	if in.eof() {
		in.restore(start)
		return nil, false
	}
	_, width := in.peekRune()
	if width == 0 {
		width = 1
	}
	value := in.remaining()[:width]
	in.advance(width)
	return &ast.Node{Kind: ast.KindEscape, Span: in.spanFrom(start), Value: value}, true
}

// tryBlockComment matches `/* … */` (spec §4.1, §6).
func tryBlockComment(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("/*") {
		in.restore(start)
		return nil, false
	}
	idx := strings.Index(in.remaining(), "*/")
	if idx < 0 {
		in.restore(start)
		return nil, false
	}
	text := in.remaining()[:idx]
	in.advance(idx + len("*/"))
	return &ast.Node{Kind: ast.KindComment, Span: in.spanFrom(start), Value: text}, true
}

// tryLineComment matches `// … \n` (the newline is not consumed, so it
// still produces its own SoftBreak token).
func tryLineComment(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("//") {
		in.restore(start)
		return nil, false
	}
	idx := strings.IndexByte(in.remaining(), '\n')
	var text string
	if idx < 0 {
		text = in.remaining()
		in.advance(len(text))
	} else {
		text = in.remaining()[:idx]
		in.advance(idx)
	}
	return &ast.Node{Kind: ast.KindComment, Span: in.spanFrom(start), Value: text}, true
}

// tryInlineStyle matches a delimiter-bounded inline style. If the
// style's own flag is already set, the caller never invokes this (self-
// non-nesting is enforced by the dispatch guard above), matching spec
// §4.1 "if already set, the sub-parser fails immediately so that **, *,
// __, etc. cannot self-nest."
func tryInlineStyle(in *input, ctx *context, delim string, kind ast.Kind, flag *bool) (*ast.Node, bool) {
	start := in.save()
	openStart := in.currentTokenStart()
	if !in.consumePrefix(delim) {
		in.restore(start)
		return nil, false
	}
	openSpan := in.spanFrom(openStart)

	var children []*ast.Node
	var closeSpan, fullSpan span.Span
	err := scopedFlag(flag, func() error {
		return ctx.withDepth(func() error {
			children = parseElements(in, ctx, func() bool { return in.hasPrefix(delim) })
			closeStart := in.currentTokenStart()
			if !in.consumePrefix(delim) {
				return errNoMatch
			}
			closeSpan = in.spanFrom(closeStart)
			fullSpan = in.spanFrom(openStart)
			return nil
		})
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: kind, Span: fullSpan, OpenSpan: openSpan, CloseSpan: closeSpan, Children: children}, true
}

// tryHeader matches `#`×N optional `!` space content to end-of-line
// (spec §4.1 "Header").
func tryHeader(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	level := 0
	for {
		b, ok := in.peek()
		if !ok || b != '#' {
			break
		}
		in.advance(1)
		level++
	}
	if level < 1 || level > 6 {
		in.restore(start)
		return nil, false
	}
	folded := in.consumePrefix("!")
	if !in.consumePrefix(" ") {
		in.restore(start)
		return nil, false
	}

	var children []*ast.Node
	err := scopedFlag(&ctx.insideHeader, func() error {
		return ctx.withDepth(func() error {
			children = parseElements(in, ctx, func() bool {
				b, ok := in.peek()
				return !ok || b == '\n'
			})
			return nil
		})
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{
		Kind:         ast.KindHeader,
		Span:         in.spanFrom(start),
		Level:        level,
		IsFolded:     folded,
		SectionIndex: ctx.nextSectionIndex(),
		Children:     children,
	}, true
}

// tryHLine matches 3–9 `-` at line start, terminated by newline or EOF
// (spec §8 "three to nine - is valid; ten or more is not").
func tryHLine(in *input) (*ast.Node, bool) {
	start := in.save()
	count := 0
	for {
		b, ok := in.peek()
		if !ok || b != '-' {
			break
		}
		in.advance(1)
		count++
	}
	if count < 3 || count > 9 {
		in.restore(start)
		return nil, false
	}
	if b, ok := in.peek(); ok && b != '\n' {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindHLine, Span: in.spanFrom(start)}, true
}

// tryMention matches `<#uuid>` (discussion) or `<@uuid>` (user) (spec
// §4.1, §6).
func tryMention(in *input) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("<") {
		in.restore(start)
		return nil, false
	}
	var kind ast.MentionKind
	switch {
	case in.consumePrefix("#"):
		kind = ast.MentionDocument
	case in.consumePrefix("@"):
		kind = ast.MentionUser
	default:
		in.restore(start)
		return nil, false
	}
	idx := strings.IndexByte(in.remaining(), '>')
	if idx < 0 {
		in.restore(start)
		return nil, false
	}
	id := in.remaining()[:idx]
	if !isUUID(id) {
		in.restore(start)
		return nil, false
	}
	in.advance(idx + 1)
	return &ast.Node{Kind: ast.KindMention, Span: in.spanFrom(start), MentionKind: kind, Value: id}, true
}
