package ast

// childSequences returns every child sequence owned directly by n, as
// pointers so callers (ForEachChildVec) can replace a sequence in
// place. The enumeration matches spec §4.3: "including both halves of
// Fold, x/y/content of each Table cell, and items of each Conditional
// variant." If deliberately exposes only its body — its Condition is
// walked separately by components that care, never by these traits.
func childSequences(n *Node) []*[]*Node {
	switch n.Kind {
	case KindFold:
		var seqs []*[]*Node
		if n.Summary != nil {
			seqs = append(seqs, &n.Summary.Children)
		}
		if n.Details != nil {
			seqs = append(seqs, &n.Details.Children)
		}
		return seqs

	case KindCell:
		return []*[]*Node{&n.XChildren, &n.YChildren, &n.Children}

	case KindText, KindEscape, KindComment, KindError,
		KindNull, KindFootnoteRef, KindTimeNow, KindAge, KindVariable,
		KindMention, KindSoftBreak, KindHardBreak, KindHLine,
		KindCode, KindTeX:
		return nil

	default:
		// Every other kind (inline styles; Header, BlockQuote, Styled,
		// Literal, Ruby; List, Table; Media, ExternalMedia; Include,
		// Category, Redirect, Define; Footnote; If; Row, ConditionalRows,
		// Cell's siblings ConditionalCells, ListItem, ConditionalItems)
		// exposes a single Children sequence.
		return []*[]*Node{&n.Children}
	}
}

// TraverseChildren visits each direct child of n, without restructuring
// n's own child sequences (spec §4.3 "traverse_children: mutable,
// visit each direct child, no structural changes"). fn may still mutate
// a visited child's own fields.
func TraverseChildren(n *Node, fn func(*Node)) {
	for _, seq := range childSequences(n) {
		for _, child := range *seq {
			fn(child)
		}
	}
}

// TraverseChildrenRef is the read-only counterpart of TraverseChildren,
// used by renderers, the formatter, and LSP metadata walks (spec §4.3
// "traverse_children_ref"). Callers must not mutate the nodes passed to
// fn.
func TraverseChildrenRef(n *Node, fn func(*Node)) {
	for _, seq := range childSequences(n) {
		for _, child := range *seq {
			fn(child)
		}
	}
}

// ForEachChildVec passes each of n's child sequences to fn as a whole,
// letting fn replace the sequence in place (spec §4.3
// "for_each_children_vec... the transformer needs this to splice
// conditional expansions"). This is what preprocess pass 1 uses for its
// generic "otherwise: recurse into each child sequence" step.
func ForEachChildVec(n *Node, fn func(*[]*Node)) {
	for _, seq := range childSequences(n) {
		fn(seq)
	}
}
