package ast

import "testing"

func TestKindString(t *testing.T) {
	if got := KindBold.String(); got != "Bold" {
		t.Errorf("KindBold.String() = %q, want Bold", got)
	}
	if got := Kind(255).String(); got != "Unknown" {
		t.Errorf("Kind(255).String() = %q, want Unknown", got)
	}
}

func TestIsInlineStyle(t *testing.T) {
	for _, k := range []Kind{KindBold, KindItalic, KindStrikethrough, KindUnderline, KindSuperscript, KindSubscript} {
		if !k.IsInlineStyle() {
			t.Errorf("%v.IsInlineStyle() = false, want true", k)
		}
	}
	for _, k := range []Kind{KindText, KindHeader, KindTable} {
		if k.IsInlineStyle() {
			t.Errorf("%v.IsInlineStyle() = true, want false", k)
		}
	}
}
