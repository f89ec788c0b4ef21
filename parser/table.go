package parser

import (
	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

// parseTableBlock matches `{{{#table <row items> }}}` (spec §3.3
// "Table: children are row items; a row item is either a Row ... or a
// ConditionalRows").
func parseTableBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var rows []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		if _, ok := parseParams(in, ctx); !ok {
			return errNoMatch
		}
		for {
			skipInlineSpace(in)
			item, ok := parseRowItem(in, ctx)
			if !ok {
				break
			}
			rows = append(rows, item)
		}
		var ok bool
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &ast.Node{Kind: ast.KindTable, Span: in.spanFrom(start), CloseSpan: closeSp, Children: rows}, true
}

// parseRowItem tries ConditionalRows first, then a bare Row (spec
// §4.1 "Conditional inside Table/List").
func parseRowItem(in *input, ctx *context) (*ast.Node, bool) {
	if in.hasPrefix("{{{#if") {
		return parseConditionalRows(in, ctx)
	}
	return parseRow(in, ctx)
}

func parseConditionalRows(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !consumeBraceKeyword(in, "if") {
		in.restore(start)
		return nil, false
	}
	var cond *expr.Expression
	var rows []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		skipInlineSpace(in)
		c, ok := parseCondition(in, ctx)
		if !ok {
			return errNoMatch
		}
		cond = c
		consumeBodySeparator(in)
		for {
			skipInlineSpace(in)
			row, ok := parseRow(in, ctx)
			if !ok {
				break
			}
			rows = append(rows, row)
		}
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindConditionalRows, Span: in.spanFrom(start), CloseSpan: closeSp, Condition: cond, Children: rows}, true
}

func parseRow(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[[") {
		in.restore(start)
		return nil, false
	}
	var params *ast.Parameters
	var cells []*ast.Node
	err := ctx.withDepth(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		for {
			skipInlineSpace(in)
			cell, ok := parseCellItem(in, ctx)
			if !ok {
				break
			}
			cells = append(cells, cell)
		}
		if !in.consumePrefix("]]") {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindRow, Span: in.spanFrom(start), Params: params, Children: cells}, true
}

func parseCellItem(in *input, ctx *context) (*ast.Node, bool) {
	if in.hasPrefix("{{{#if") {
		return parseConditionalCells(in, ctx)
	}
	return parseCell(in, ctx)
}

func parseConditionalCells(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !consumeBraceKeyword(in, "if") {
		in.restore(start)
		return nil, false
	}
	var cond *expr.Expression
	var cells []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		skipInlineSpace(in)
		c, ok := parseCondition(in, ctx)
		if !ok {
			return errNoMatch
		}
		cond = c
		consumeBodySeparator(in)
		for {
			skipInlineSpace(in)
			cell, ok := parseCell(in, ctx)
			if !ok {
				break
			}
			cells = append(cells, cell)
		}
		if closeSp, ok = closeBrace(in); !ok {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindConditionalCells, Span: in.spanFrom(start), CloseSpan: closeSp, Condition: cond, Children: cells}, true
}

// parseCell matches `[[` params optional `[[#x …]]` optional `[[#y
// …]]` content `]]` (spec §3.3 "Cell (parameters + optional x, y
// children + content children)").
func parseCell(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[[") {
		in.restore(start)
		return nil, false
	}
	var params *ast.Parameters
	var xChildren, yChildren, content []*ast.Node
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		if in.hasPrefix("[[#x") {
			if part, ok := parseTaggedBracketPart(in, ctx, "x"); ok {
				xChildren = part
			}
		}
		if in.hasPrefix("[[#y") {
			if part, ok := parseTaggedBracketPart(in, ctx, "y"); ok {
				yChildren = part
			}
		}
		content = parseElements(in, ctx, func() bool { return in.hasPrefix("]]") })
		if !in.consumePrefix("]]") {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindCell, Span: in.spanFrom(start), Params: params, XChildren: xChildren, YChildren: yChildren, Children: content}, true
}

// parseTaggedBracketPart matches `[[#tag … ]]`, used by Cell's x/y
// heading sub-parts.
func parseTaggedBracketPart(in *input, ctx *context, tag string) ([]*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[[#" + tag) {
		in.restore(start)
		return nil, false
	}
	if _, ok := parseParams(in, ctx); !ok {
		in.restore(start)
		return nil, false
	}
	children := parseElements(in, ctx, func() bool { return in.hasPrefix("]]") })
	if !in.consumePrefix("]]") {
		in.restore(start)
		return nil, false
	}
	return children, true
}
