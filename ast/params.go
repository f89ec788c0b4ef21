package ast

import (
	"sort"

	"github.com/sevenwiki/sevenmark/span"
)

// Parameter is one `#ident="quoted"` entry: a key, the span of the
// whole entry, and a value that is itself an AST child sequence (spec
// §3.2 — values may contain text, escapes, and variable references).
type Parameter struct {
	Key   string
	Span  span.Span
	Value []*Node
}

// Parameters is the ordered mapping described in spec §3.2: iteration
// is key-sorted and stable across runs, and an absent parameter is
// represented by the key missing from the map, never by an empty
// value.
type Parameters struct {
	entries map[string]*Parameter
}

// NewParameters returns an empty Parameters map.
func NewParameters() *Parameters {
	return &Parameters{entries: make(map[string]*Parameter)}
}

// Set inserts or overwrites the parameter named key.
func (p *Parameters) Set(key string, sp span.Span, value []*Node) {
	p.entries[key] = &Parameter{Key: key, Span: sp, Value: value}
}

// Get returns the parameter named key, or ok=false if absent.
func (p *Parameters) Get(key string) (*Parameter, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.entries[key]
	return v, ok
}

// PlainText returns the plain-text value of the parameter named key, or
// ok=false if the parameter is absent. Used by Define, Include,
// Redirect, and Media resolution.
func (p *Parameters) PlainText(key string) (text string, ok bool) {
	param, ok := p.Get(key)
	if !ok {
		return "", false
	}
	return PlainText(param.Value), true
}

// Len reports the number of parameters.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Keys returns the parameter names in sorted order.
func (p *Parameters) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every parameter in key-sorted order.
func (p *Parameters) Each(fn func(*Parameter)) {
	for _, k := range p.Keys() {
		fn(p.entries[k])
	}
}
