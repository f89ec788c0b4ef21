package expr

import "strconv"

// ValueKind discriminates the runtime value produced by evaluation
// (spec §4.2 "a runtime Value in {Bool, Number(i64), String, Null}").
type ValueKind uint8

const (
	VBool ValueKind = iota
	VNumber
	VString
	VNull
)

// Value is the result of evaluating an Expression.
type Value struct {
	Kind ValueKind
	B    bool
	N    int64
	S    string
}

func BoolValue(b bool) Value     { return Value{Kind: VBool, B: b} }
func NumberValue(n int64) Value  { return Value{Kind: VNumber, N: n} }
func StringValue(s string) Value { return Value{Kind: VString, S: s} }
func NullValue() Value           { return Value{Kind: VNull} }

// Truthy applies the coercion rules of spec §4.2: Bool(b) -> b; Null ->
// false; empty string -> false, non-empty -> true; number 0 -> false,
// other -> true.
func Truthy(v Value) bool {
	switch v.Kind {
	case VBool:
		return v.B
	case VString:
		return v.S != ""
	case VNumber:
		return v.N != 0
	default: // VNull
		return false
	}
}

// toNumber coerces v to a signed 64-bit integer for ordering comparisons
// and int(). Strings parse as base-10 integers; bools are 0/1; null does
// not coerce (spec §4.2: "null is not numeric").
func toNumber(v Value) (int64, bool) {
	switch v.Kind {
	case VNumber:
		return v.N, true
	case VBool:
		if v.B {
			return 1, true
		}
		return 0, true
	case VString:
		n, err := strconv.ParseInt(v.S, 10, 64)
		return n, err == nil
	default: // VNull
		return 0, false
	}
}

// stringCoerce renders v as the decimal-string/true-false/empty form used
// by str() (spec §4.2).
func stringCoerce(v Value) string {
	switch v.Kind {
	case VString:
		return v.S
	case VNumber:
		return strconv.FormatInt(v.N, 10)
	case VBool:
		if v.B {
			return "true"
		}
		return "false"
	default: // VNull
		return ""
	}
}

// equals implements spec §4.2's equality rule: like types compare
// directly; a string equals a number iff the string parses to that exact
// integer; every other cross-type comparison is false; Null == Null is
// true.
func equals(l, r Value) bool {
	if l.Kind == r.Kind {
		switch l.Kind {
		case VBool:
			return l.B == r.B
		case VNumber:
			return l.N == r.N
		case VString:
			return l.S == r.S
		default: // VNull
			return true
		}
	}
	if l.Kind == VString && r.Kind == VNumber {
		n, err := strconv.ParseInt(l.S, 10, 64)
		return err == nil && n == r.N
	}
	if l.Kind == VNumber && r.Kind == VString {
		n, err := strconv.ParseInt(r.S, 10, 64)
		return err == nil && n == l.N
	}
	return false
}

// Evaluate runs e against vars, the flat variable scope maintained by
// preprocess (spec §4.4). Or/And short-circuit: the right operand is
// never evaluated once the left side already determines the result.
func Evaluate(e *Expression, vars map[string]string) Value {
	switch e.Kind {
	case KindOr:
		if Truthy(Evaluate(e.Left, vars)) {
			return BoolValue(true)
		}
		return BoolValue(Truthy(Evaluate(e.Right, vars)))

	case KindAnd:
		if !Truthy(Evaluate(e.Left, vars)) {
			return BoolValue(false)
		}
		return BoolValue(Truthy(Evaluate(e.Right, vars)))

	case KindNot:
		return BoolValue(!Truthy(Evaluate(e.Operand, vars)))

	case KindComparison:
		l := Evaluate(e.Left, vars)
		r := Evaluate(e.Right, vars)
		switch e.Op {
		case OpEq:
			return BoolValue(equals(l, r))
		case OpNe:
			return BoolValue(!equals(l, r))
		default:
			ln, lok := toNumber(l)
			rn, rok := toNumber(r)
			if !lok || !rok {
				// spec §4.2: a non-coercible operand makes the
				// comparison false, not an error and not 0.
				return BoolValue(false)
			}
			switch e.Op {
			case OpLt:
				return BoolValue(ln < rn)
			case OpGt:
				return BoolValue(ln > rn)
			case OpLe:
				return BoolValue(ln <= rn)
			default: // OpGe
				return BoolValue(ln >= rn)
			}
		}

	case KindFunctionCall:
		arg := Evaluate(e.Arg, vars)
		switch e.Func {
		case FuncInt:
			n, _ := toNumber(arg) // toNumber already returns 0 on failure
			return NumberValue(n)
		case FuncLen:
			// len() measures strings only; every other kind (including
			// Null) coerces to zero rather than stringifying first (spec
			// §9 "coercion to zero for non-strings").
			if arg.Kind == VString {
				return NumberValue(int64(len(arg.S)))
			}
			return NumberValue(0)
		default: // FuncStr
			return StringValue(stringCoerce(arg))
		}

	case KindStringLiteral:
		return StringValue(e.Str)
	case KindNumberLiteral:
		return NumberValue(e.Num)
	case KindBoolLiteral:
		return BoolValue(e.Bool)
	case KindNull:
		return NullValue()

	case KindGroup:
		return Evaluate(e.Operand, vars)

	default: // KindElement
		if name, ok := e.Element.AsVariableName(); ok {
			if v, ok2 := vars[name]; ok2 {
				return StringValue(v)
			}
			return NullValue()
		}
		if text, ok := e.Element.AsPlainText(); ok {
			return StringValue(text)
		}
		return NullValue()
	}
}
