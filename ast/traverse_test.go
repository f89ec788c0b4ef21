package ast

import (
	"testing"

	"github.com/sevenwiki/sevenmark/expr"
)

func TestTraverseChildrenSimple(t *testing.T) {
	n := &Node{Kind: KindBold, Children: []*Node{textNode("a"), textNode("b")}}
	var seen []string
	TraverseChildren(n, func(c *Node) { seen = append(seen, c.Value) })
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("seen = %v, want [a b]", seen)
	}
}

func TestTraverseChildrenLeafHasNone(t *testing.T) {
	n := textNode("leaf")
	count := 0
	TraverseChildren(n, func(*Node) { count++ })
	if count != 0 {
		t.Errorf("leaf node produced %d children, want 0", count)
	}
}

func TestTraverseChildrenFoldBothHalves(t *testing.T) {
	n := &Node{
		Kind: KindFold,
		Summary: &FoldPart{
			Children: []*Node{textNode("sum")},
		},
		Details: &FoldPart{
			Children: []*Node{textNode("det1"), textNode("det2")},
		},
	}
	var seen []string
	TraverseChildren(n, func(c *Node) { seen = append(seen, c.Value) })
	want := []string{"sum", "det1", "det2"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestTraverseChildrenCellXYContent(t *testing.T) {
	n := &Node{
		Kind:      KindCell,
		XChildren: []*Node{textNode("x")},
		YChildren: []*Node{textNode("y")},
		Children:  []*Node{textNode("content")},
	}
	var seen []string
	TraverseChildrenRef(n, func(c *Node) { seen = append(seen, c.Value) })
	want := []string{"x", "y", "content"}
	for i, w := range want {
		if seen[i] != w {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], w)
		}
	}
}

func TestTraverseIfExposesOnlyBody(t *testing.T) {
	n := &Node{
		Kind:      KindIf,
		Condition: &expr.Expression{Kind: expr.KindBoolLiteral, Bool: true},
		Children:  []*Node{textNode("body")},
	}
	var seen []string
	TraverseChildren(n, func(c *Node) { seen = append(seen, c.Value) })
	if len(seen) != 1 || seen[0] != "body" {
		t.Errorf("seen = %v, want [body]; Condition must not be walked by this trait", seen)
	}
}

func TestForEachChildVecCanSplice(t *testing.T) {
	n := &Node{Kind: KindConditionalItems, Children: []*Node{
		{Kind: KindListItem, Children: []*Node{textNode("item")}},
	}}
	ForEachChildVec(n, func(seq *[]*Node) {
		*seq = append(*seq, &Node{Kind: KindListItem, Children: []*Node{textNode("spliced")}})
	})
	if len(n.Children) != 2 {
		t.Fatalf("len(n.Children) = %d, want 2", len(n.Children))
	}
}
