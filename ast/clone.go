package ast

// Clone returns a deep copy of n and everything it owns (Children,
// Params, Summary/Details, XChildren/YChildren). It is used by the
// transformer to give each Include occurrence its own private copy of a
// cached parsed include AST before running substitution on it (spec
// §4.4 pass 4 step 2 "If the parsed include is available, clone that
// AST"), so that one cached template can back many concurrent
// occurrences without them mutating each other's trees.
//
// Condition and ResolvedInfo are copied shallowly: neither is mutated by
// anything that runs on a freshly-parsed, not-yet-postprocessed include
// template, so sharing them across clones is safe.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Children = CloneNodes(n.Children)
	clone.Params = cloneParams(n.Params)
	clone.Summary = cloneFoldPart(n.Summary)
	clone.Details = cloneFoldPart(n.Details)
	clone.XChildren = CloneNodes(n.XChildren)
	clone.YChildren = CloneNodes(n.YChildren)
	return &clone
}

// CloneNodes deep-copies a child sequence.
func CloneNodes(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

func cloneFoldPart(p *FoldPart) *FoldPart {
	if p == nil {
		return nil
	}
	return &FoldPart{Span: p.Span, Params: cloneParams(p.Params), Children: CloneNodes(p.Children)}
}

func cloneParams(p *Parameters) *Parameters {
	if p == nil {
		return nil
	}
	clone := NewParameters()
	p.Each(func(param *Parameter) {
		clone.Set(param.Key, param.Span, CloneNodes(param.Value))
	})
	return clone
}
