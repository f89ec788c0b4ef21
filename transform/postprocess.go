package transform

import (
	"context"
	"fmt"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/internal/derrors"
)

// Postprocess implements spec §4.5: build a (namespace, title) →
// existence lookup from pre's collected media references, then walk the
// AST once more populating every Media node's ResolvedInfo in place.
func (p *Preprocessor) Postprocess(ctx context.Context, pre *PreProcessed) (proc *Processed, err error) {
	defer derrors.Wrap(&err, "Postprocess")

	var lookup map[Reference]Existence
	if len(pre.media) > 0 {
		refs := make([]Reference, 0, len(pre.media))
		for r := range pre.media {
			refs = append(refs, r)
		}
		existence, fetchErr := p.store.CheckDocumentsExist(ctx, refs)
		if fetchErr != nil {
			return nil, fmt.Errorf("%w: %v", derrors.LookupFailure, fetchErr)
		}

		lookup = make(map[Reference]Existence, len(existence))
		for _, e := range existence {
			lookup[e.Ref.Normalize()] = e
		}
	}

	for _, n := range pre.Nodes {
		resolveMediaWalk(n, lookup)
	}

	return &Processed{PreProcessed: pre}, nil
}

// resolveMediaWalk recurses the AST populating ResolvedInfo on every
// Media node it finds (spec §4.5's five independent slots).
func resolveMediaWalk(n *ast.Node, lookup map[Reference]Existence) {
	if n.Kind == ast.KindMedia {
		resolveMedia(n, lookup)
	}
	ast.TraverseChildren(n, func(c *ast.Node) { resolveMediaWalk(c, lookup) })
}

func resolveMedia(n *ast.Node, lookup map[Reference]Existence) {
	if n.Params == nil {
		return
	}

	var info ast.MediaResolution
	var hasInfo bool

	if ref, ok := mediaSlotRef(n, "file", File); ok {
		info.File = resolvedRefFor(ref, lookup)
		hasInfo = true
	}
	if ref, ok := mediaSlotRef(n, "document", Document); ok {
		info.Document = resolvedRefFor(ref, lookup)
		hasInfo = true
	}
	if ref, ok := mediaSlotRef(n, "category", Category); ok {
		info.Category = resolvedRefFor(ref, lookup)
		hasInfo = true
	}
	if ref, ok := mediaSlotRef(n, "user", User); ok {
		info.User = resolvedRefFor(ref, lookup)
		hasInfo = true
	}
	if url, ok := n.Params.PlainText("url"); ok && url != "" {
		info.URL = url
		hasInfo = true
	}

	if hasInfo {
		n.ResolvedInfo = &info
	}
}

// mediaSlotRef reads the named parameter and builds its reference key, or
// reports absence — empty-string parameters are skipped, per spec §4.5.
func mediaSlotRef(n *ast.Node, param string, ns Namespace) (Reference, bool) {
	text, ok := n.Params.PlainText(param)
	if !ok || text == "" {
		return Reference{}, false
	}
	return Reference{Namespace: ns, Title: text}.Normalize(), true
}

// resolvedRefFor reports the lookup outcome for ref. For File references,
// validity follows from the presence of a file URL; for every other
// namespace it reflects the existence check directly (spec §4.5 "For
// File references, is_valid iff file_url is present; for others, it
// reflects the existence check").
func resolvedRefFor(ref Reference, lookup map[Reference]Existence) *ast.ResolvedRef {
	e, found := lookup[ref]
	if !found {
		return &ast.ResolvedRef{IsValid: false}
	}
	if ref.Namespace == File {
		return &ast.ResolvedRef{FileURL: e.FileURL, Width: e.Width, Height: e.Height, IsValid: e.FileURL != ""}
	}
	return &ast.ResolvedRef{IsValid: e.IsValid}
}
