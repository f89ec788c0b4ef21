// Package expr implements the condition expression grammar used by If
// blocks and conditional rows/cells/items (spec §3.4, §4.2).
package expr

import "github.com/sevenwiki/sevenmark/span"

// Kind discriminates the cases of the expression tree (spec §3.4). Unlike
// ast.Kind, this tree is small and closed: the grammar in spec §4.2 is the
// only producer of Expression values.
type Kind uint8

const (
	KindOr Kind = iota
	KindAnd
	KindNot
	KindComparison
	KindFunctionCall
	KindStringLiteral
	KindNumberLiteral
	KindBoolLiteral
	KindNull
	KindGroup
	KindElement
)

// CompareOp is one of the six comparison operators (spec §3.4).
type CompareOp uint8

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Func is one of the three restricted function names (spec §3.4, §4.2).
type Func uint8

const (
	FuncInt Func = iota
	FuncLen
	FuncStr
)

func (f Func) String() string {
	switch f {
	case FuncInt:
		return "int"
	case FuncLen:
		return "len"
	case FuncStr:
		return "str"
	default:
		return "?"
	}
}

// ElementNode is the minimal view an embedded AST node exposes to the
// expression evaluator (spec §4.2 "Element: looks up variable name in the
// map... anything else becomes Null"). ast.Node implements this interface
// structurally; expr never imports ast, avoiding a dependency cycle
// between the element tree and the expression tree that embeds into it.
type ElementNode interface {
	// AsVariableName returns the variable name and true if the node is a
	// Variable reference, so the evaluator can look it up.
	AsVariableName() (name string, ok bool)
	// AsPlainText returns the node's literal text and true if the node is
	// a Text leaf, so the evaluator can use it directly as a string.
	AsPlainText() (text string, ok bool)
}

// Expression is the single tagged-union type for conditions. Like ast.Node,
// it carries a Kind and only the fields relevant to that Kind are set.
type Expression struct {
	Kind Kind
	Span span.Span

	// Or, And, Comparison.
	Left, Right *Expression
	OpSpan      span.Span // the captured operator's own span

	// Not, Group.
	Operand *Expression

	// Comparison.
	Op CompareOp

	// FunctionCall.
	Func Func
	Arg  *Expression

	// Literals.
	Str  string
	Num  int64
	Bool bool

	// Element.
	Element ElementNode
}
