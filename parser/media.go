package parser

import "github.com/sevenwiki/sevenmark/ast"

// tryBracketConstruct implements the `[` dispatch bucket (spec §4.1):
// double-bracket media/external-media first, then the six single-
// bracket macros.
func tryBracketConstruct(in *input, ctx *context) (*ast.Node, bool) {
	if in.hasPrefix("[[") {
		if n, ok := tryMedia(in, ctx); ok {
			return n, true
		}
	}
	return tryMacro(in, ctx)
}

// tryMedia matches `[[` optional `#provider` params optional `::`
// caption `]]` (spec §3.3 "Media", "ExternalMedia (YouTube/Vimeo/…)").
// A provider keyword produces ExternalMedia; its absence produces the
// internal Media variant with its resolve slot left empty for
// postprocess (spec §4.5).
func tryMedia(in *input, ctx *context) (*ast.Node, bool) {
	start := in.save()
	if !in.consumePrefix("[[") {
		in.restore(start)
		return nil, false
	}

	var provider string
	providerCheckpoint := in.save()
	if in.consumePrefix("#") {
		name := scanIdent(in)
		// A bare `#keyword` names an external provider; `#key="value"`
		// is an ordinary parameter and must be left for parseParams.
		if b, ok := in.peek(); name != "" && (!ok || b != '=') {
			provider = name
		} else {
			in.restore(providerCheckpoint)
		}
	}

	var params *ast.Parameters
	var children []*ast.Node
	err := scopedFlag(&ctx.insideMediaElement, func() error {
		return ctx.withDepth(func() error {
			var ok bool
			params, ok = parseParams(in, ctx)
			if !ok {
				return errNoMatch
			}
			checkpoint := in.save()
			skipInlineSpace(in)
			if !in.consumePrefix("::") {
				in.restore(checkpoint)
			} else {
				skipInlineSpace(in)
			}
			children = parseElements(in, ctx, func() bool { return in.hasPrefix("]]") })
			if !in.consumePrefix("]]") {
				return errNoMatch
			}
			return nil
		})
	})
	if err != nil {
		in.restore(start)
		return nil, false
	}

	if provider != "" {
		return &ast.Node{
			Kind:     ast.KindExternalMedia,
			Span:     in.spanFrom(start),
			Value:    provider,
			Params:   params,
			Children: children,
		}, true
	}
	return &ast.Node{
		Kind:     ast.KindMedia,
		Span:     in.spanFrom(start),
		Params:   params,
		Children: children,
	}, true
}
