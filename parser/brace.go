package parser

import (
	"strings"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

// blockKeyword is one entry of the ordered `{{{#keyword` alternatives
// (spec §4.1 dispatch table, "{" bucket). The list order is the match
// order: a generic Styled block only wins once every specific keyword
// has been tried and failed.
type blockKeyword struct {
	name  string
	parse func(in *input, ctx *context, start int) (*ast.Node, bool)
}

// blockKeywords is the list tryBraceBlock walks. It is set from
// blockKeywordTable by init: the parse functions reach back to
// tryBraceBlock, so initializing blockKeywords directly would be an
// initialization cycle.
var blockKeywords []blockKeyword

func init() { blockKeywords = blockKeywordTable }

var blockKeywordTable = []blockKeyword{
	{"include", parseIncludeBlock},
	{"category", parseCategoryBlock},
	{"redirect", parseRedirectBlock},
	{"if", parseIfBlock},
	{"table", parseTableBlock},
	{"list", parseListBlock},
	{"fold", parseFoldBlock},
	{"footnote", parseFootnoteBlock},
	{"blockquote", parseBlockQuoteBlock},
	{"ruby", parseRubyBlock},
	{"code", parseCodeBlock},
	{"tex", parseTeXBlock},
	{"define", parseDefineBlock},
}

// tryBraceBlock implements the `{` dispatch bucket (spec §4.1): each
// keyword is tried in order, then the generic Styled block, then the
// bare Literal block, falling back to a literal `{` character.
func tryBraceBlock(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("{{{") {
		in.restore(start)
		return nil, false
	}

	for _, kw := range blockKeywords {
		if consumeKeyword(in, kw.name) {
			if n, ok := kw.parse(in, ctx, start); ok {
				return n, true
			}
			in.restore(start)
			return nil, false
		}
	}

	if in.consumePrefix("#") {
		// A `#ident="value"...` sequence that isn't one of the known
		// keywords is the generic Styled block (spec §3.3 "Block:
		// Styled"). The leading '#' has already been consumed, so put
		// it back for parseParams to see.
		in.restore(start + len("{{{"))
		if n, ok := parseStyledBlock(in, ctx, start); ok {
			return n, true
		}
		in.restore(start)
		return nil, false
	}

	if n, ok := parseLiteralBlock(in, ctx, start); ok {
		return n, true
	}
	in.restore(start)
	return nil, false
}

// consumeKeyword consumes `#name` if present and the keyword is not
// merely a prefix of a longer identifier (so `#if` doesn't swallow a
// hypothetical `#iffy`).
func consumeKeyword(in *input, name string) bool {
	checkpoint := in.save()
	if !in.consumePrefix("#" + name) {
		return false
	}
	if b, ok := in.peek(); ok && isIdentByte(b) {
		in.restore(checkpoint)
		return false
	}
	return true
}

// consumeBraceKeyword consumes `{{{#name` as one unit — the opening
// delimiter for a nested conditional row/cell/item construct (spec
// §4.1 "Conditional inside Table/List").
func consumeBraceKeyword(in *input, name string) bool {
	checkpoint := in.save()
	if !in.consumePrefix("{{{") {
		return false
	}
	if !consumeKeyword(in, name) {
		in.restore(checkpoint)
		return false
	}
	return true
}

// closeBrace consumes the `}}}` delimiter, returning its span.
func closeBrace(in *input) (closeSpan span.Span, ok bool) {
	closeStart := in.currentTokenStart()
	if !in.consumePrefix("}}}") {
		return span.Span{}, false
	}
	return in.spanFrom(closeStart), true
}

func parseIncludeBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindInclude, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Children: children}, true
}

func parseCategoryBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindCategory, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Children: children}, true
}

func parseRedirectBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindRedirect, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Children: children}, true
}

func parseDefineBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindDefine, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params}, true
}

// parseIfBlock matches `{{{#if <condition> [::] <body> }}}` (spec
// §3.3 "If", §4.2 "condition parser also accepts a trailing :: as a
// body separator").
func parseIfBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var cond *expr.Expression
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		skipInlineSpace(in)
		var ok bool
		cond, ok = parseCondition(in, ctx)
		if !ok {
			return errNoMatch
		}
		consumeBodySeparator(in)
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindIf, Span: in.spanFrom(start), CloseSpan: closeSp, Condition: cond, Children: children}, true
}

// consumeBodySeparator consumes an optional `::` plus surrounding
// whitespace between a condition and its body.
func consumeBodySeparator(in *input) {
	checkpoint := in.save()
	skipInlineSpace(in)
	if !in.consumePrefix("::") {
		in.restore(checkpoint)
		return
	}
	skipInlineSpace(in)
}

func parseFootnoteBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var children []*ast.Node
	var closeSp span.Span
	err := scopedFlag(&ctx.insideFootnote, func() error {
		return ctx.withDepth(func() error {
			var ok bool
			if params, ok = parseParams(in, ctx); !ok {
				return errNoMatch
			}
			children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
			if closeSp, ok = closeBrace(in); !ok {
				return errNoMatch
			}
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{
		Kind: ast.KindFootnote, Span: in.spanFrom(start), CloseSpan: closeSp,
		Params: params, Children: children, FootnoteIndex: ctx.nextFootnoteIndex(),
	}, true
}

func parseBlockQuoteBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	return parseGenericParamBlock(in, ctx, start, ast.KindBlockQuote)
}

func parseRubyBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	return parseGenericParamBlock(in, ctx, start, ast.KindRuby)
}

func parseStyledBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	return parseGenericParamBlock(in, ctx, start, ast.KindStyled)
}

// parseGenericParamBlock handles the several block kinds that are
// "params then recursively-parsed children" with no kind-specific
// fields (BlockQuote, Ruby, Styled).
func parseGenericParamBlock(in *input, ctx *context, start int, kind ast.Kind) (*ast.Node, bool) {
	var params *ast.Parameters
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: kind, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Children: children}, true
}

// parseLiteralBlock matches the bare `{{{ … }}}` form with no `#`
// prefix at all (spec §6 "Literal block | {{{ (no #) | }}}").
func parseLiteralBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var children []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("}}}") })
		var ok bool
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindLiteral, Span: in.spanFrom(start), CloseSpan: closeSp, Children: children}, true
}

// parseCodeBlock and parseTeXBlock capture their interior verbatim —
// no inner parsing (spec §4.1 "Code and TeX capture their interior
// verbatim").
func parseCodeBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var value string
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		idx := strings.Index(in.remaining(), "}}}")
		if idx < 0 {
			return errNoMatch
		}
		value = in.remaining()[:idx]
		in.advance(idx)
		closeSp, ok = closeBrace(in)
		if !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindCode, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Value: value}, true
}

func parseTeXBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var params *ast.Parameters
	var value string
	var closeSp span.Span
	isBlock := true
	err := ctx.withDepth(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		if v, hasInline := params.PlainText("inline"); hasInline && v == "true" {
			isBlock = false
		}
		idx := strings.Index(in.remaining(), "}}}")
		if idx < 0 {
			return errNoMatch
		}
		value = in.remaining()[:idx]
		in.advance(idx)
		closeSp, ok = closeBrace(in)
		if !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindTeX, Span: in.spanFrom(start), CloseSpan: closeSp, Params: params, Value: value, IsBlock: isBlock}, true
}

// parseFoldBlock matches `{{{#fold [[ <summary> ]] [[ <details> ]] }}}`
// (spec §3.3 "Fold: a summary and a details FoldInner, each itself a
// parameters-plus-children record with its own spans").
func parseFoldBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var summary, details *ast.FoldPart
	var closeSp span.Span
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if _, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		skipInlineSpace(in)
		if summary, ok = parseFoldPart(in, ctx); !ok {
			return errNoMatch
		}
		skipInlineSpace(in)
		if details, ok = parseFoldPart(in, ctx); !ok {
			return errNoMatch
		}
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindFold, Span: in.spanFrom(start), CloseSpan: closeSp, Summary: summary, Details: details}, true
}

func parseFoldPart(in *input, ctx *context) (*ast.FoldPart, bool) {
	start := in.save()
	if !in.consumePrefix("[[") {
		in.restore(start)
		return nil, false
	}
	params, ok := parseParams(in, ctx)
	if !ok {
		in.restore(start)
		return nil, false
	}
	children := parseElements(in, ctx, func() bool { return in.hasPrefix("]]") })
	if !in.consumePrefix("]]") {
		in.restore(start)
		return nil, false
	}
	return &ast.FoldPart{Span: in.spanFrom(start), Params: params, Children: children}, true
}
