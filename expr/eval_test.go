package expr

import "testing"

// fakeElement is a minimal ElementNode stand-in so expr's own tests
// don't need to import ast (which would create the cycle the
// ElementNode interface exists to avoid).
type fakeElement struct {
	varName string
	isVar   bool
	text    string
	isText  bool
}

func (f fakeElement) AsVariableName() (string, bool) { return f.varName, f.isVar }
func (f fakeElement) AsPlainText() (string, bool)    { return f.text, f.isText }

func variableRef(name string) *Expression {
	return &Expression{Kind: KindElement, Element: fakeElement{varName: name, isVar: true}}
}

func numberLit(n int64) *Expression  { return &Expression{Kind: KindNumberLiteral, Num: n} }
func stringLit(s string) *Expression { return &Expression{Kind: KindStringLiteral, Str: s} }
func boolLit(b bool) *Expression     { return &Expression{Kind: KindBoolLiteral, Bool: b} }
func nullLit() *Expression           { return &Expression{Kind: KindNull} }

func TestEvaluateLiterals(t *testing.T) {
	if v := Evaluate(numberLit(42), nil); v.Kind != VNumber || v.N != 42 {
		t.Errorf("number literal = %+v", v)
	}
	if v := Evaluate(stringLit("hi"), nil); v.Kind != VString || v.S != "hi" {
		t.Errorf("string literal = %+v", v)
	}
	if v := Evaluate(boolLit(true), nil); v.Kind != VBool || !v.B {
		t.Errorf("bool literal = %+v", v)
	}
	if v := Evaluate(nullLit(), nil); v.Kind != VNull {
		t.Errorf("null literal = %+v", v)
	}
}

// trackingElement records whether the evaluator ever asked it for a
// value, so short-circuit tests can check that an operand was skipped.
type trackingElement struct{ looked *bool }

func (f trackingElement) AsVariableName() (string, bool) { *f.looked = true; return "x", true }
func (f trackingElement) AsPlainText() (string, bool)    { *f.looked = true; return "x", true }

func TestEvaluateShortCircuitOr(t *testing.T) {
	// spec §8 scenario 6: "true || bad" yields true without evaluating bad.
	var looked bool
	bad := &Expression{Kind: KindComparison, Op: OpEq, Left: numberLit(1), Right: &Expression{Kind: KindElement, Element: trackingElement{&looked}}}
	e := &Expression{Kind: KindOr, Left: boolLit(true), Right: bad}
	v := Evaluate(e, nil)
	if !Truthy(v) {
		t.Errorf("true || x = %+v, want truthy", v)
	}
	if looked {
		t.Error("true || x evaluated x")
	}
}

func TestEvaluateShortCircuitAnd(t *testing.T) {
	var looked bool
	e := &Expression{Kind: KindAnd, Left: boolLit(false), Right: &Expression{Kind: KindElement, Element: trackingElement{&looked}}}
	v := Evaluate(e, map[string]string{})
	if Truthy(v) {
		t.Errorf("false && x = %+v, want false", v)
	}
	if looked {
		t.Error("false && x evaluated x")
	}
}

func TestEvaluateNot(t *testing.T) {
	e := &Expression{Kind: KindNot, Operand: boolLit(false)}
	if v := Evaluate(e, nil); !Truthy(v) {
		t.Errorf("!false = %+v, want true", v)
	}
}

func TestEvaluateComparisonEquality(t *testing.T) {
	tests := []struct {
		name string
		e    *Expression
		want bool
	}{
		{"1==1", &Expression{Kind: KindComparison, Op: OpEq, Left: numberLit(1), Right: numberLit(1)}, true},
		{"1==2", &Expression{Kind: KindComparison, Op: OpEq, Left: numberLit(1), Right: numberLit(2)}, false},
		{"string-number equal", &Expression{Kind: KindComparison, Op: OpEq, Left: stringLit("42"), Right: numberLit(42)}, true},
		{"string-number unequal text", &Expression{Kind: KindComparison, Op: OpEq, Left: stringLit("abc"), Right: numberLit(42)}, false},
		{"bool-number cross type", &Expression{Kind: KindComparison, Op: OpEq, Left: boolLit(true), Right: numberLit(1)}, false},
		{"null==null", &Expression{Kind: KindComparison, Op: OpEq, Left: nullLit(), Right: nullLit()}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truthy(Evaluate(tc.e, nil)); got != tc.want {
				t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestEvaluateOrderingWithNonCoercibleIsFalse(t *testing.T) {
	// null is not numeric: a comparison involving it must be false, not 0.
	e := &Expression{Kind: KindComparison, Op: OpLt, Left: nullLit(), Right: numberLit(5)}
	if v := Evaluate(e, nil); Truthy(v) {
		t.Errorf("null < 5 = %+v, want false", v)
	}
}

func TestEvaluateOrdering(t *testing.T) {
	e := &Expression{Kind: KindComparison, Op: OpLe, Left: stringLit("3"), Right: numberLit(5)}
	if v := Evaluate(e, nil); !Truthy(v) {
		t.Errorf(`"3" <= 5 = %+v, want true`, v)
	}
}

func TestEvaluateFunctions(t *testing.T) {
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncInt, Arg: stringLit("7")}, nil); v.N != 7 {
		t.Errorf("int(\"7\") = %+v, want 7", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncInt, Arg: stringLit("nope")}, nil); v.N != 0 {
		t.Errorf("int(\"nope\") = %+v, want 0", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncLen, Arg: stringLit("hello")}, nil); v.N != 5 {
		t.Errorf("len(\"hello\") = %+v, want 5", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncLen, Arg: nullLit()}, nil); v.N != 0 {
		t.Errorf("len(null) = %+v, want 0", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncLen, Arg: numberLit(42)}, nil); v.N != 0 {
		t.Errorf("len(42) = %+v, want 0 (non-strings coerce to zero, not their stringified length)", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncLen, Arg: boolLit(true)}, nil); v.N != 0 {
		t.Errorf("len(true) = %+v, want 0 (non-strings coerce to zero, not their stringified length)", v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncStr, Arg: boolLit(true)}, nil); v.S != "true" {
		t.Errorf(`str(true) = %+v, want "true"`, v)
	}
	if v := Evaluate(&Expression{Kind: KindFunctionCall, Func: FuncStr, Arg: nullLit()}, nil); v.S != "" {
		t.Errorf(`str(null) = %+v, want ""`, v)
	}
}

func TestEvaluateGroup(t *testing.T) {
	e := &Expression{Kind: KindGroup, Operand: numberLit(9)}
	if v := Evaluate(e, nil); v.N != 9 {
		t.Errorf("group = %+v, want 9", v)
	}
}

func TestEvaluateElementVariableLookup(t *testing.T) {
	vars := map[string]string{"name": "Alice"}
	if v := Evaluate(variableRef("name"), vars); v.Kind != VString || v.S != "Alice" {
		t.Errorf("variable lookup = %+v, want Alice", v)
	}
	if v := Evaluate(variableRef("missing"), vars); v.Kind != VNull {
		t.Errorf("missing variable = %+v, want Null", v)
	}
}

func TestEvaluateElementPlainText(t *testing.T) {
	e := &Expression{Kind: KindElement, Element: fakeElement{text: "literal", isText: true}}
	if v := Evaluate(e, nil); v.Kind != VString || v.S != "literal" {
		t.Errorf("plain text element = %+v, want literal", v)
	}
}

func TestEvaluateElementFallsBackToNull(t *testing.T) {
	e := &Expression{Kind: KindElement, Element: fakeElement{}}
	if v := Evaluate(e, nil); v.Kind != VNull {
		t.Errorf("non-variable non-text element = %+v, want Null", v)
	}
}
