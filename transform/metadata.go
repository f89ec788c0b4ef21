package transform

import "github.com/sevenwiki/sevenmark/ast"

// Section is one Header's closing span, tracked with a stack of open
// headers during pass 2 (spec §4.4 pass 2 "sections: closing spans for
// every Header... when a new header of level ≤ top appears, pop and
// record end = new header start").
type Section struct {
	SectionIndex int
	Level        int
	Start        int
	End          int
}

// PreProcessed is the result of Preprocess: the expanded AST plus every
// piece of metadata collected along the way (spec §6 "PreProcessed and
// Processed expose...").
type PreProcessed struct {
	Nodes        []*ast.Node
	Categories   map[string]bool
	Redirect     *Reference
	References   map[Reference]bool
	UserMentions map[string]bool
	Sections     []Section

	// media holds the deduplicated set of media references gathered
	// during preprocess (own document plus one level of includes, spec
	// §4.4 pass 4 step 4 "collect its media references into the outer
	// media set"); Postprocess resolves these against the store.
	media map[Reference]bool
}

// Processed is PreProcessed with every Media node's resolved_info slot
// populated in place (spec §4.5).
type Processed struct {
	*PreProcessed
}

func newPreProcessed(nodes []*ast.Node) *PreProcessed {
	return &PreProcessed{
		Nodes:        nodes,
		Categories:   make(map[string]bool),
		References:   make(map[Reference]bool),
		UserMentions: make(map[string]bool),
		media:        make(map[Reference]bool),
	}
}
