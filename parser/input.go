package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/sevenwiki/sevenmark/span"
)

// input is the locating slice described in spec §4.1: a view over the
// source bytes carrying the current byte cursor, exposing the two
// positions every sub-parser needs to build a span around the region it
// consumed.
type input struct {
	src    string
	cursor int
}

func newInput(src string) *input {
	return &input{src: src}
}

// currentTokenStart is the cursor position now — the start of whatever
// token a sub-parser is about to attempt.
func (in *input) currentTokenStart() int { return in.cursor }

// previousTokenEnd is the cursor position immediately after the last
// successful match — the end of whatever token a sub-parser just
// consumed. Since the cursor only advances on successful consumption,
// this is simply the current cursor at the moment of return.
func (in *input) previousTokenEnd() int { return in.cursor }

func (in *input) eof() bool { return in.cursor >= len(in.src) }

func (in *input) remaining() string { return in.src[in.cursor:] }

// peek returns the byte at the cursor without consuming it, and false
// at end of input.
func (in *input) peek() (byte, bool) {
	if in.eof() {
		return 0, false
	}
	return in.src[in.cursor], true
}

// peekAt returns the byte offset bytes ahead of the cursor.
func (in *input) peekAt(offset int) (byte, bool) {
	pos := in.cursor + offset
	if pos < 0 || pos >= len(in.src) {
		return 0, false
	}
	return in.src[pos], true
}

// peekRune returns the rune at the cursor and its width, for
// UTF-8-aware scanning (e.g. the generic text run).
func (in *input) peekRune() (rune, int) {
	if in.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(in.remaining())
}

// advance moves the cursor forward n bytes.
func (in *input) advance(n int) { in.cursor += n }

// hasPrefix reports whether the remaining input starts with s, without
// consuming it.
func (in *input) hasPrefix(s string) bool {
	return strings.HasPrefix(in.remaining(), s)
}

// consumePrefix consumes s if the remaining input starts with it,
// reporting success.
func (in *input) consumePrefix(s string) bool {
	if !in.hasPrefix(s) {
		return false
	}
	in.advance(len(s))
	return true
}

// spanFrom builds a span covering [start, cursor).
func (in *input) spanFrom(start int) span.Span {
	return span.New(start, in.cursor)
}

// save/restore let a sub-parser backtrack on failure without the
// caller needing to know the cursor's internal representation.
func (in *input) save() int       { return in.cursor }
func (in *input) restore(pos int) { in.cursor = pos }
