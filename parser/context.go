// Package parser implements the recursive-descent SevenMark document
// parser (spec §4.1): a source string goes in, a slice of *ast.Node
// comes out, and the parser never fails globally — unrecognised input
// degrades to a literal Error node.
package parser

import "github.com/sevenwiki/sevenmark/internal/derrors"

// defaultMaxRecursionDepth bounds how deeply delimited blocks may nest
// (spec §4.1 "max_recursion_depth | default 16").
const defaultMaxRecursionDepth = 16

// context carries the state shared by pointer through every combinator
// (spec §4.1, §9 "State in the parser"). Sub-parsers change it only
// through withDepth / withDepthAndTrim and the scoped flag helpers,
// which restore the previous values on exit; no sub-parser may leak a
// flag past its own scope.
type context struct {
	recursionDepth    int
	maxRecursionDepth int
	trimDepth         int

	insideHeader        bool
	insideBold          bool
	insideItalic        bool
	insideStrikethrough bool
	insideUnderline     bool
	insideSuperscript   bool
	insideSubscript     bool
	insideFootnote      bool
	insideMediaElement  bool

	originalInput []byte

	sectionCounter  int
	footnoteCounter int

	onRecursionOverflow func()
}

func newContext(input []byte) *context {
	return &context{
		maxRecursionDepth: defaultMaxRecursionDepth,
		originalInput:     input,
		sectionCounter:    1,
		footnoteCounter:   1,
	}
}

// isAtLineStart reports whether pos is byte 0 or immediately follows a
// newline (spec §4.1, §8 "Line-start detection... no other positions").
func (c *context) isAtLineStart(pos int) bool {
	return pos == 0 || (pos-1 >= 0 && pos-1 < len(c.originalInput) && c.originalInput[pos-1] == '\n')
}

// withDepth increments recursion depth, runs inner, and always
// decrements on the way out — success or failure (spec §4.1). It fails
// immediately, without calling inner, if depth would exceed the max.
func (c *context) withDepth(inner func() error) error {
	if c.recursionDepth+1 > c.maxRecursionDepth {
		if c.onRecursionOverflow != nil {
			c.onRecursionOverflow()
		}
		return derrors.RecursionDepthExceeded
	}
	c.recursionDepth++
	err := inner()
	c.recursionDepth--
	return err
}

// withDepthAndTrim is withDepth plus a surrounding trim scope (spec
// §4.1 "with_depth_and_trim").
func (c *context) withDepthAndTrim(inner func() error) error {
	c.trimDepth++
	err := c.withDepth(inner)
	c.trimDepth--
	return err
}

func (c *context) isTrimming() bool { return c.trimDepth > 0 }

func (c *context) nextSectionIndex() int {
	idx := c.sectionCounter
	c.sectionCounter++
	return idx
}

func (c *context) nextFootnoteIndex() int {
	idx := c.footnoteCounter
	c.footnoteCounter++
	return idx
}

// scopedFlag sets *flag to true, runs inner, and restores the previous
// value on every path — the pattern behind each inside_* guard (spec §9
// "scoped setters ... always have a matching unsetter called on both
// success and failure paths").
func scopedFlag(flag *bool, inner func() error) error {
	prev := *flag
	*flag = true
	err := inner()
	*flag = prev
	return err
}
