package ast

import (
	"github.com/sevenwiki/sevenmark/expr"
	"github.com/sevenwiki/sevenmark/span"
)

// MentionKind distinguishes the two mention forms (spec §4.1 "<#uuid>
// discussion mention, <@uuid> user mention").
type MentionKind uint8

const (
	MentionDocument MentionKind = iota
	MentionUser
)

// FoldPart is one half (summary or details) of a Fold node (spec §3.3
// "a summary and a details FoldInner, each itself a parameters-plus-
// children record with its own spans").
type FoldPart struct {
	Span     span.Span
	Params   *Parameters
	Children []*Node
}

// ResolvedRef is the lookup outcome for a single Media parameter slot
// (spec §4.5).
type ResolvedRef struct {
	FileURL string
	Width   int
	Height  int
	IsValid bool
}

// MediaResolution is the mutable slot postprocess fills in on a Media
// node (spec §4.5): up to four looked-up slots plus the verbatim url
// text. A nil pointer means that parameter was absent or empty.
type MediaResolution struct {
	File     *ResolvedRef
	Document *ResolvedRef
	Category *ResolvedRef
	User     *ResolvedRef
	URL      string
}

// Node is the single tagged-union element type (spec §3.3): every case
// of the ~40-variant union is one Go struct discriminated by Kind, with
// only the fields relevant to that Kind populated. There is no
// inheritance — every consumer switches on Kind directly (spec §9
// "Polymorphism").
type Node struct {
	Kind Kind
	Span span.Span

	// OpenSpan, CloseSpan bound the delimiter tokens of a delimited
	// variant (spec §3.3 "an open-delimiter span and a close-delimiter
	// span"), e.g. the `{{{#code` and `}}}` of a Code block. Zero for
	// variants that aren't delimited.
	OpenSpan  span.Span
	CloseSpan span.Span

	// Children holds the generic child sequence for inline and block
	// variants, and the row/item sequence for Table/List and their
	// conditional wrappers.
	Children []*Node

	// Params holds the parameter map for parametrised variants. Nil
	// where a variant carries none.
	Params *Parameters

	// Text, Escape, Comment, Error, Code, TeX, Age (date text), Mention
	// (uuid text), ExternalMedia (provider name) leaf content.
	Value string

	// Variable name (spec §3.3 leaf marker "Variable").
	Name string

	// Header.
	Level        int
	IsFolded     bool
	SectionIndex int

	// TeX.
	IsBlock bool

	// Fold.
	Summary *FoldPart
	Details *FoldPart

	// Cell: optional x/y heading sequences alongside the content
	// Children (spec §3.3 "optional x, y children + content children").
	XChildren []*Node
	YChildren []*Node

	// Media.
	ResolvedInfo *MediaResolution

	// Footnote.
	FootnoteIndex int

	// Mention.
	MentionKind MentionKind

	// If, ConditionalRows, ConditionalCells, ConditionalItems.
	Condition *expr.Expression
}

// AsVariableName implements expr.ElementNode: only a Variable node
// resolves to a name the evaluator can look up.
func (n *Node) AsVariableName() (name string, ok bool) {
	if n.Kind == KindVariable {
		return n.Name, true
	}
	return "", false
}

// AsPlainText implements expr.ElementNode: only a Text leaf is usable
// directly as a string value (spec §4.2 "Text produces a String value;
// anything else becomes Null").
func (n *Node) AsPlainText() (text string, ok bool) {
	if n.Kind == KindText {
		return n.Value, true
	}
	return "", false
}

// PlainText concatenates the Text and Escape content of nodes, ignoring
// every other kind (spec §4.4 pass 1, "extract plain text: Text and
// Escape content concatenated; other element kinds ignored"). It is the
// shared helper behind Define's variable extraction, Include/Redirect
// title resolution, Category name collection, and Media parameter
// resolution.
func PlainText(nodes []*Node) string {
	var out []byte
	for _, n := range nodes {
		switch n.Kind {
		case KindText, KindEscape:
			out = append(out, n.Value...)
		}
	}
	return string(out)
}
