package parser

import (
	"testing"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

func TestParseEmptyInput(t *testing.T) {
	nodes := Parse("")
	if len(nodes) != 0 {
		t.Fatalf("got %d nodes, want 0", len(nodes))
	}
}

func TestParseBold(t *testing.T) {
	nodes := Parse("**bold**")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Kind != ast.KindBold {
		t.Fatalf("got kind %s, want Bold", n.Kind)
	}
	if n.Span != span.New(0, 8) {
		t.Fatalf("got span %v, want [0,8)", n.Span)
	}
	if len(n.Children) != 1 || n.Children[0].Kind != ast.KindText || n.Children[0].Value != "bold" {
		t.Fatalf("got children %+v, want single Text \"bold\"", n.Children)
	}
	if n.Children[0].Span != span.New(2, 6) {
		t.Fatalf("got text span %v, want [2,6)", n.Children[0].Span)
	}
}

func TestParseHeader(t *testing.T) {
	nodes := Parse("## Hello")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Kind != ast.KindHeader {
		t.Fatalf("got kind %s, want Header", n.Kind)
	}
	if n.Level != 2 {
		t.Fatalf("got level %d, want 2", n.Level)
	}
	if n.IsFolded {
		t.Fatal("got folded header, want not folded")
	}
	if n.SectionIndex != 1 {
		t.Fatalf("got section index %d, want 1", n.SectionIndex)
	}
	if n.Span != span.New(0, 8) {
		t.Fatalf("got span %v, want [0,8)", n.Span)
	}
	if len(n.Children) != 1 || n.Children[0].Value != "Hello" {
		t.Fatalf("got children %+v, want single Text \"Hello\"", n.Children)
	}
	if n.Children[0].Span != span.New(3, 8) {
		t.Fatalf("got text span %v, want [3,8)", n.Children[0].Span)
	}
}

func TestParseFoldedHeader(t *testing.T) {
	nodes := Parse("##! F")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Kind != ast.KindHeader {
		t.Fatalf("got kind %s, want Header", n.Kind)
	}
	if n.Level != 2 {
		t.Fatalf("got level %d, want 2", n.Level)
	}
	if !n.IsFolded {
		t.Fatal("got not-folded header, want folded")
	}
	if len(n.Children) != 1 || n.Children[0].Value != "F" {
		t.Fatalf("got children %+v, want single Text \"F\"", n.Children)
	}
}

func TestParseHeaderOnlyAtLineStart(t *testing.T) {
	nodes := Parse("x ## y")
	for _, n := range nodes {
		if n.Kind == ast.KindHeader {
			t.Fatalf("got a Header node for non-line-start '#', nodes: %+v", nodes)
		}
	}

	nodes = Parse("x\n## y")
	var sawHeader bool
	for _, n := range nodes {
		if n.Kind == ast.KindHeader {
			sawHeader = true
		}
	}
	if !sawHeader {
		t.Fatalf("want a Header after a newline, got %+v", nodes)
	}
}

func TestParseHLineBoundary(t *testing.T) {
	for _, tc := range []struct {
		dashes int
		want   bool
	}{
		{2, false},
		{3, true},
		{9, true},
		{10, false},
	} {
		src := repeat('-', tc.dashes)
		nodes := Parse(src)
		got := len(nodes) == 1 && nodes[0].Kind == ast.KindHLine
		if got != tc.want {
			t.Errorf("dashes=%d: got hline=%v, want %v (nodes: %+v)", tc.dashes, got, tc.want, nodes)
		}
	}
}

func repeat(b byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}

func TestParseHLineOnlyAtLineStart(t *testing.T) {
	nodes := Parse("x ---")
	for _, n := range nodes {
		if n.Kind == ast.KindHLine {
			t.Fatalf("got HLine not at line start, nodes: %+v", nodes)
		}
	}
}

func TestParseUnclosedBraceFallsBackToLiteral(t *testing.T) {
	nodes := Parse("{{{#define #x=\"1\"")
	for _, n := range nodes {
		if n.Kind == ast.KindDefine {
			t.Fatalf("want no Define node for unclosed block, got %+v", nodes)
		}
	}
}

func TestParseDefineAndVariableShape(t *testing.T) {
	nodes := Parse(`{{{#define #x="42"}}}[var(x)]`)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2 (Define, Variable), nodes: %+v", len(nodes), nodes)
	}
	def := nodes[0]
	if def.Kind != ast.KindDefine {
		t.Fatalf("got kind %s, want Define", def.Kind)
	}
	if def.Params == nil || def.Params.Len() != 1 {
		t.Fatalf("got params %+v, want one entry", def.Params)
	}
	text, ok := def.Params.PlainText("x")
	if !ok || text != "42" {
		t.Fatalf("got x=%q ok=%v, want 42/true", text, ok)
	}

	v := nodes[1]
	if v.Kind != ast.KindVariable {
		t.Fatalf("got kind %s, want Variable", v.Kind)
	}
	if v.Name != "x" {
		t.Fatalf("got variable name %q, want \"x\"", v.Name)
	}
}

func TestParseIfBlockShape(t *testing.T) {
	nodes := Parse("{{{#if 1==1 :: yes}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindIf {
		t.Fatalf("got %+v, want single If node", nodes)
	}
	n := nodes[0]
	if n.Condition == nil {
		t.Fatal("want non-nil Condition")
	}
	if n.Condition.Kind != expr.KindComparison {
		t.Fatalf("got condition kind %v, want Comparison", n.Condition.Kind)
	}
	if len(n.Children) != 1 || n.Children[0].Value != "yes" {
		t.Fatalf("got children %+v, want single Text \"yes\"", n.Children)
	}
}

func TestParseIfBlockWithOrShape(t *testing.T) {
	nodes := Parse("{{{#if true || bad :: yes}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindIf {
		t.Fatalf("got %+v, want single If node", nodes)
	}
	if nodes[0].Condition == nil {
		t.Fatal("want non-nil Condition")
	}
}

func TestParseTableShape(t *testing.T) {
	nodes := Parse("{{{#table [[[[cell]]]]}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindTable {
		t.Fatalf("got %+v, want single Table node", nodes)
	}
	table := nodes[0]
	if len(table.Children) != 1 || table.Children[0].Kind != ast.KindRow {
		t.Fatalf("got table children %+v, want single Row", table.Children)
	}
	row := table.Children[0]
	if len(row.Children) != 1 || row.Children[0].Kind != ast.KindCell {
		t.Fatalf("got row children %+v, want single Cell", row.Children)
	}
	cell := row.Children[0]
	if len(cell.Children) != 1 || cell.Children[0].Value != "cell" {
		t.Fatalf("got cell content %+v, want single Text \"cell\"", cell.Children)
	}
}

func TestParseListShape(t *testing.T) {
	nodes := Parse("{{{#list [[one]][[two]]}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindList {
		t.Fatalf("got %+v, want single List node", nodes)
	}
	list := nodes[0]
	if len(list.Children) != 2 {
		t.Fatalf("got %d list items, want 2", len(list.Children))
	}
	for i, want := range []string{"one", "two"} {
		item := list.Children[i]
		if item.Kind != ast.KindListItem {
			t.Fatalf("item %d: got kind %s, want ListItem", i, item.Kind)
		}
		if len(item.Children) != 1 || item.Children[0].Value != want {
			t.Fatalf("item %d: got children %+v, want single Text %q", i, item.Children, want)
		}
	}
}

func TestParseFootnoteIndexIncrements(t *testing.T) {
	nodes := Parse("{{{#footnote a}}}{{{#footnote b}}}")
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].FootnoteIndex != 1 || nodes[1].FootnoteIndex != 2 {
		t.Fatalf("got footnote indexes %d,%d, want 1,2", nodes[0].FootnoteIndex, nodes[1].FootnoteIndex)
	}
}

func TestParseMention(t *testing.T) {
	nodes := Parse("<#550e8400-e29b-41d4-a716-446655440000>")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindMention {
		t.Fatalf("got %+v, want single Mention node", nodes)
	}
	if nodes[0].MentionKind != ast.MentionDocument {
		t.Fatalf("got mention kind %v, want MentionDocument", nodes[0].MentionKind)
	}
}

func TestParseMentionInvalidUUIDFallsBackToText(t *testing.T) {
	nodes := Parse("<#not-a-uuid>")
	for _, n := range nodes {
		if n.Kind == ast.KindMention {
			t.Fatalf("want no Mention for invalid uuid, got %+v", nodes)
		}
	}
}

func TestParseInlineStyleSelfNonNesting(t *testing.T) {
	nodes := Parse("**a**b**")
	if len(nodes) == 0 || nodes[0].Kind != ast.KindBold {
		t.Fatalf("got %+v, want a leading Bold node", nodes)
	}
}

func TestParseCodeBlockVerbatim(t *testing.T) {
	nodes := Parse("{{{#code **not bold** }}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindCode {
		t.Fatalf("got %+v, want single Code node", nodes)
	}
	if nodes[0].Value != " **not bold** " {
		t.Fatalf("got value %q, want verbatim content", nodes[0].Value)
	}
}

func TestParseMediaInternalWithOwnParam(t *testing.T) {
	nodes := Parse(`[[#file="pic.png"]]`)
	if len(nodes) != 1 || nodes[0].Kind != ast.KindMedia {
		t.Fatalf("got %+v, want single Media node", nodes)
	}
	text, ok := nodes[0].Params.PlainText("file")
	if !ok || text != "pic.png" {
		t.Fatalf("got file=%q ok=%v, want pic.png/true", text, ok)
	}
}

func TestParseExternalMediaProviderKeyword(t *testing.T) {
	nodes := Parse(`[[#youtube #id="abc"]]`)
	if len(nodes) != 1 || nodes[0].Kind != ast.KindExternalMedia {
		t.Fatalf("got %+v, want single ExternalMedia node", nodes)
	}
	if nodes[0].Value != "youtube" {
		t.Fatalf("got provider %q, want youtube", nodes[0].Value)
	}
	text, ok := nodes[0].Params.PlainText("id")
	if !ok || text != "abc" {
		t.Fatalf("got id=%q ok=%v, want abc/true", text, ok)
	}
}

func TestParseIncludeTrimsTitleWhitespace(t *testing.T) {
	nodes := Parse(`{{{#include #namespace="document" Other}}}`)
	if len(nodes) != 1 || nodes[0].Kind != ast.KindInclude {
		t.Fatalf("got %+v, want single Include node", nodes)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].Value != "Other" {
		t.Fatalf("got children %+v, want single Text \"Other\" with no leading space", nodes[0].Children)
	}
}

func TestParseCodeBlockDoesNotTrimBody(t *testing.T) {
	nodes := Parse("{{{#code  spaced  }}}")
	if len(nodes) != 1 || nodes[0].Value != "  spaced  " {
		t.Fatalf("got %+v, want verbatim (untrimmed) body", nodes)
	}
}

func TestWithMaxRecursionDepthLowersLimit(t *testing.T) {
	deep := "{{{#blockquote{{{#blockquote{{{#blockquotex}}}}}}}}}"
	withDefault := Parse(deep)
	withLower := Parse(deep, WithMaxRecursionDepth(1))
	if len(withDefault) == 0 || withDefault[0].Kind != ast.KindBlockQuote {
		t.Fatalf("got %+v with default depth, want a parsed BlockQuote", withDefault)
	}
	if len(withLower) > 0 && withLower[0].Kind == ast.KindBlockQuote && len(withLower[0].Children) > 0 && withLower[0].Children[0].Kind == ast.KindBlockQuote {
		t.Fatalf("got %+v with max depth 1, want nesting rejected below the outermost level", withLower)
	}
}

func TestParseListItemTrimsWhitespace(t *testing.T) {
	nodes := Parse("{{{#list [[ one ]]}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindList {
		t.Fatalf("got %+v, want single List node", nodes)
	}
	item := nodes[0].Children[0]
	if len(item.Children) != 1 || item.Children[0].Value != "one" {
		t.Fatalf("got list item children %+v, want single Text \"one\" with no surrounding spaces", item.Children)
	}
}

func TestParseCellTrimsWhitespace(t *testing.T) {
	nodes := Parse("{{{#table [[[[ cell ]]]]}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindTable {
		t.Fatalf("got %+v, want single Table node", nodes)
	}
	cell := nodes[0].Children[0].Children[0]
	if len(cell.Children) != 1 || cell.Children[0].Value != "cell" {
		t.Fatalf("got cell children %+v, want single Text \"cell\" with no surrounding spaces", cell.Children)
	}
}

func TestParseFoldTrimsSummaryAndDetailsWhitespace(t *testing.T) {
	nodes := Parse("{{{#fold [[ summary ]] [[ details ]]}}}")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindFold {
		t.Fatalf("got %+v, want single Fold node", nodes)
	}
	fold := nodes[0]
	if len(fold.Summary.Children) != 1 || fold.Summary.Children[0].Value != "summary" {
		t.Fatalf("got summary children %+v, want single Text \"summary\" with no surrounding spaces", fold.Summary.Children)
	}
	if len(fold.Details.Children) != 1 || fold.Details.Children[0].Value != "details" {
		t.Fatalf("got details children %+v, want single Text \"details\" with no surrounding spaces", fold.Details.Children)
	}
}

func TestWithRecursionOverflowHookFires(t *testing.T) {
	deep := "{{{#blockquote{{{#blockquotex}}}}}}"
	var calls int
	Parse(deep, WithMaxRecursionDepth(1), WithRecursionOverflowHook(func() { calls++ }))
	if calls == 0 {
		t.Fatal("want the recursion overflow hook to fire at least once, got 0 calls")
	}
}
