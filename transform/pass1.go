package transform

import (
	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

// pass1 implements spec §4.4 pass 1 — define/if/variable substitution —
// over one node sequence, in document order, against the shared mutable
// variables scope. It returns the (possibly shorter or longer) replacement
// sequence; If splicing and removal change the sequence length in place,
// which is why this returns a new slice rather than mutating nodes
// through indices alone.
func pass1(nodes []*ast.Node, vars map[string]string) []*ast.Node {
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		switch n.Kind {
		case ast.KindDefine:
			if n.Params != nil {
				n.Params.Each(func(p *ast.Parameter) {
					vars[p.Key] = ast.PlainText(p.Value)
				})
			}
			i++

		case ast.KindVariable:
			if v, ok := vars[n.Name]; ok {
				nodes[i] = &ast.Node{Kind: ast.KindText, Span: span.Zero, Value: v}
			}
			i++

		case ast.KindIf:
			if expr.Truthy(expr.Evaluate(n.Condition, vars)) {
				nodes = spliceAt(nodes, i, n.Children)
				// Re-process at the same index so nested defines/ifs in
				// the spliced body are seen (spec §4.4 pass 1 step 3).
				continue
			}
			nodes = removeAt(nodes, i)
			continue

		case ast.KindTable:
			n.Children = pass1TableRows(n.Children, vars)
			i++

		case ast.KindList:
			n.Children = pass1ListItems(n.Children, vars)
			i++

		default:
			ast.ForEachChildVec(n, func(seq *[]*ast.Node) {
				*seq = pass1(*seq, vars)
			})
			i++
		}
	}
	return nodes
}

// pass1TableRows applies the table-specific conditional expansion rule
// (spec §4.4 "Table conditional expansion") to a Table's direct children
// (Row | ConditionalRows), recursing the general pass into ordinary
// cells.
func pass1TableRows(rows []*ast.Node, vars map[string]string) []*ast.Node {
	i := 0
	for i < len(rows) {
		r := rows[i]
		switch r.Kind {
		case ast.KindConditionalRows:
			if expr.Truthy(expr.Evaluate(r.Condition, vars)) {
				rows = spliceAt(rows, i, r.Children)
				continue
			}
			rows = removeAt(rows, i)
			continue

		case ast.KindRow:
			r.Children = pass1CellItems(r.Children, vars)
			i++

		default:
			i++
		}
	}
	return rows
}

// pass1CellItems applies the cell-level analogue (ConditionalCells →
// Cell), recursing the general pass into each ordinary Cell's x/y/content
// sequences (spec §4.4 "Inside an ordinary Cell, recursion uses the
// general pass above").
func pass1CellItems(cells []*ast.Node, vars map[string]string) []*ast.Node {
	i := 0
	for i < len(cells) {
		c := cells[i]
		switch c.Kind {
		case ast.KindConditionalCells:
			if expr.Truthy(expr.Evaluate(c.Condition, vars)) {
				cells = spliceAt(cells, i, c.Children)
				continue
			}
			cells = removeAt(cells, i)
			continue

		case ast.KindCell:
			ast.ForEachChildVec(c, func(seq *[]*ast.Node) {
				*seq = pass1(*seq, vars)
			})
			i++

		default:
			i++
		}
	}
	return cells
}

// pass1ListItems is pass1TableRows's analogue for List (ListItem |
// ConditionalItems), recursing the general pass into each item's content.
func pass1ListItems(items []*ast.Node, vars map[string]string) []*ast.Node {
	i := 0
	for i < len(items) {
		it := items[i]
		switch it.Kind {
		case ast.KindConditionalItems:
			if expr.Truthy(expr.Evaluate(it.Condition, vars)) {
				items = spliceAt(items, i, it.Children)
				continue
			}
			items = removeAt(items, i)
			continue

		case ast.KindListItem:
			ast.ForEachChildVec(it, func(seq *[]*ast.Node) {
				*seq = pass1(*seq, vars)
			})
			i++

		default:
			i++
		}
	}
	return items
}

// spliceAt replaces the element at i with replacement, in place.
func spliceAt(nodes []*ast.Node, i int, replacement []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes)-1+len(replacement))
	out = append(out, nodes[:i]...)
	out = append(out, replacement...)
	out = append(out, nodes[i+1:]...)
	return out
}

// removeAt drops the element at i, in place.
func removeAt(nodes []*ast.Node, i int) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes)-1)
	out = append(out, nodes[:i]...)
	out = append(out, nodes[i+1:]...)
	return out
}
