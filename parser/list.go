package parser

import (
	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

// parseListBlock matches `{{{#list <list items> }}}` (spec §3.3
// "List: children are list items or ConditionalItems, with the same
// two-level conditional structure" as Table).
func parseListBlock(in *input, ctx *context, start int) (*ast.Node, bool) {
	var items []*ast.Node
	var closeSp span.Span
	err := ctx.withDepth(func() error {
		if _, ok := parseParams(in, ctx); !ok {
			return errNoMatch
		}
		for {
			skipInlineSpace(in)
			item, ok := parseListItemOrConditional(in, ctx)
			if !ok {
				break
			}
			items = append(items, item)
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
	return &ast.Node{Kind: ast.KindList, Span: in.spanFrom(start), CloseSpan: closeSp, Children: items}, true
}

func parseListItemOrConditional(in *input, ctx *context) (*ast.Node, bool) {
	if in.hasPrefix("{{{#if") {
		return parseConditionalItems(in, ctx)
	}
	return parseListItem(in, ctx)
}

func parseConditionalItems(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !consumeBraceKeyword(in, "if") {
		in.restore(start)
		return nil, false
	}
	var cond *expr.Expression
	var items []*ast.Node
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
			item, ok := parseListItem(in, ctx)
			if !ok {
				break
			}
			items = append(items, item)
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
	return &ast.Node{Kind: ast.KindConditionalItems, Span: in.spanFrom(start), CloseSpan: closeSp, Condition: cond, Children: items}, true
}

func parseListItem(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[[") {
		in.restore(start)
		return nil, false
	}
	var params *ast.Parameters
	var children []*ast.Node
	err := ctx.withDepthAndTrim(func() error {
		var ok bool
		if params, ok = parseParams(in, ctx); !ok {
			return errNoMatch
		}
		children = parseElements(in, ctx, func() bool { return in.hasPrefix("]]") })
		if !in.consumePrefix("]]") {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}
	return &ast.Node{Kind: ast.KindListItem, Span: in.spanFrom(start), Params: params, Children: children}, true
}
