package transform

import "testing"

func TestParseNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want Namespace
	}{
		{"document", Document},
		{"file", File},
		{"category", Category},
		{"user", User},
		{"", Document},
		{"bogus", Document},
	}
	for _, tt := range tests {
		if got := ParseNamespace(tt.in); got != tt.want {
			t.Errorf("ParseNamespace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNamespaceString(t *testing.T) {
	if File.String() != "file" {
		t.Errorf("File.String() = %q, want \"file\"", File.String())
	}
	if Namespace(99).String() != "document" {
		t.Errorf("unknown Namespace.String() = %q, want \"document\"", Namespace(99).String())
	}
}

func TestReferenceNormalizeNFC(t *testing.T) {
	// "e" with an acute accent as a combining sequence (U+0065 U+0301)
	// versus the precomposed form (U+00E9) — both render as the same
	// glyph and must collide under Normalize.
	decomposed := Reference{Namespace: Document, Title: "café"}
	precomposed := Reference{Namespace: Document, Title: "café"}
	if decomposed.Normalize() != precomposed.Normalize() {
		t.Errorf("Normalize() did not collapse Unicode-equivalent titles: %q vs %q",
			decomposed.Normalize().Title, precomposed.Normalize().Title)
	}
}

func TestReferenceNormalizePreservesNamespace(t *testing.T) {
	r := Reference{Namespace: Category, Title: "Plain"}
	if r.Normalize().Namespace != Category {
		t.Errorf("Normalize() changed Namespace to %v", r.Normalize().Namespace)
	}
}
