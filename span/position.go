package span

import "unicode/utf16"

// Converter maps UTF-8 byte offsets in a source string to UTF-16 code-unit
// offsets, for collaborators (an LSP, in particular) that address text in
// UTF-16 units. It is built once per source string in O(n) and answers
// each conversion in O(1) (spec §8 scenario 7;
// SPEC_FULL.md §4 "UTF-16 position conversion").
type Converter struct {
	// byteToUTF16[b] is the UTF-16 offset of the rune starting at byte b,
	// for every byte offset that starts a rune, plus one trailing entry
	// for the length of the source.
	byteToUTF16 []uint32
}

// NewConverter builds a Converter for src.
func NewConverter(src string) *Converter {
	m := make([]uint32, len(src)+1)
	var u16 uint32
	for i, r := range src {
		m[i] = u16
		if n := utf16.RuneLen(r); n > 0 {
			u16 += uint32(n)
		} else {
			u16++
		}
	}
	m[len(src)] = u16
	return &Converter{byteToUTF16: m}
}

// ToUTF16 converts a byte offset to a UTF-16 code-unit offset. Offsets past
// the end of the source clamp to the source's total UTF-16 length.
func (c *Converter) ToUTF16(byteOffset int) uint32 {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset >= len(c.byteToUTF16) {
		return c.byteToUTF16[len(c.byteToUTF16)-1]
	}
	return c.byteToUTF16[byteOffset]
}

// UTF16Span is a Span re-expressed in UTF-16 code-unit offsets.
type UTF16Span struct {
	Start uint32
	End   uint32
}

// ToUTF16Span converts s to UTF-16 offsets.
func (c *Converter) ToUTF16Span(s Span) UTF16Span {
	return UTF16Span{Start: c.ToUTF16(s.Start), End: c.ToUTF16(s.End)}
}
