package transform

import "github.com/sevenwiki/sevenmark/ast"

// includeOccurrence is one Include node found during collectOwnMetadata,
// paired with the reference key pass 4 needs to resolve it (spec §4.4
// pass 3).
type includeOccurrence struct {
	node *ast.Node
	ref  Reference
}

// mediaRefParams lists the four Media parameters pass 2/4/5 all read,
// and the namespace each resolves against (spec §4.4 pass 2 "media
// references", §4.5's resolution table).
var mediaRefParams = []struct {
	param string
	ns    Namespace
}{
	{"file", File},
	{"document", Document},
	{"category", Category},
	{"user", User},
}

// collectMediaRefs extracts out the typed references a single Media node
// names (spec §4.4 pass 2 "for each Media node, extract plain text from
// parameters named file, document, category, user and emit typed
// references"). Empty-string parameters are skipped, matching the same
// rule spec §4.5 states for postprocess's resolution table.
func collectMediaRefs(n *ast.Node, out map[Reference]bool) {
	if n.Kind != ast.KindMedia || n.Params == nil {
		return
	}
	for _, m := range mediaRefParams {
		if text, ok := n.Params.PlainText(m.param); ok && text != "" {
			out[Reference{Namespace: m.ns, Title: text}.Normalize()] = true
		}
	}
}

// collectMediaWalk recurses into n and every descendant collecting media
// references (used by include expansion, pass 4 step 4, and by the final
// reference walk, pass 5).
func collectMediaWalk(n *ast.Node, out map[Reference]bool) {
	collectMediaRefs(n, out)
	ast.TraverseChildrenRef(n, func(c *ast.Node) { collectMediaWalk(c, out) })
}

// collectOwnMetadata implements spec §4.4 passes 2 and 3 as a single
// read-only walk over the caller's own document (the pass-1-expanded
// AST, before any Include node has been filled in). The walk does not
// recurse into an Include, whose Children at this point hold only its
// parsed title text, so it never sees transcluded content. It populates pp's categories, redirect,
// user_mentions, sections, and own media references directly, and
// returns the list of Include occurrences for pass 4 to resolve.
//
// Categories/redirect/user_mentions/sections deliberately describe only
// the host document: content pulled in through an include is rendered
// inline (pass 4) but does not contribute to the host's own metadata.
// Media references are the one exception — pass 4 step 4 folds an
// include's own media references into the same outer set collected here.
func (pp *PreProcessed) collectOwnMetadata(nodes []*ast.Node) []includeOccurrence {
	var occurrences []includeOccurrence
	var headerStack []int
	maxEnd := 0

	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n.Span.End > maxEnd {
			maxEnd = n.Span.End
		}

		switch n.Kind {
		case ast.KindCategory:
			if name := ast.PlainText(n.Children); name != "" {
				pp.Categories[name] = true
			}

		case ast.KindRedirect:
			if pp.Redirect == nil {
				ns := Document
				if v, ok := n.Params.PlainText("namespace"); ok {
					ns = ParseNamespace(v)
				}
				ref := Reference{Namespace: ns, Title: ast.PlainText(n.Children)}.Normalize()
				pp.Redirect = &ref
			}

		case ast.KindMention:
			if n.MentionKind == ast.MentionUser {
				pp.UserMentions[n.Value] = true
			}

		case ast.KindHeader:
			for len(headerStack) > 0 && pp.Sections[headerStack[len(headerStack)-1]].Level >= n.Level {
				top := headerStack[len(headerStack)-1]
				headerStack = headerStack[:len(headerStack)-1]
				pp.Sections[top].End = n.Span.Start
			}
			pp.Sections = append(pp.Sections, Section{
				SectionIndex: n.SectionIndex, Level: n.Level, Start: n.Span.Start,
			})
			headerStack = append(headerStack, len(pp.Sections)-1)

		case ast.KindMedia:
			collectMediaRefs(n, pp.media)

		case ast.KindInclude:
			ns := Document
			if v, ok := n.Params.PlainText("namespace"); ok {
				ns = ParseNamespace(v)
			}
			ref := Reference{Namespace: ns, Title: ast.PlainText(n.Children)}.Normalize()
			occurrences = append(occurrences, includeOccurrence{node: n, ref: ref})
			// Include's children hold only its title text at this point;
			// they are not walked.
			return
		}

		ast.TraverseChildrenRef(n, walk)
	}

	for _, n := range nodes {
		walk(n)
	}
	for _, idx := range headerStack {
		pp.Sections[idx].End = maxEnd
	}
	return occurrences
}

// accumulateReferences implements spec §4.4 pass 5: one final walk over
// the fully include-expanded AST collecting every category reference and
// every media reference — this time including whatever includes brought
// in — into the document's outgoing reference set.
func (pp *PreProcessed) accumulateReferences() {
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		switch n.Kind {
		case ast.KindCategory:
			if name := ast.PlainText(n.Children); name != "" {
				pp.References[Reference{Namespace: Category, Title: name}.Normalize()] = true
			}
		case ast.KindMedia:
			collectMediaRefs(n, pp.References)
		}
		ast.TraverseChildrenRef(n, walk)
	}
	for _, n := range pp.Nodes {
		walk(n)
	}
}
