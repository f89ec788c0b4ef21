package transform

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/internal/derrors"
	"github.com/sevenwiki/sevenmark/internal/log"
	"github.com/sevenwiki/sevenmark/internal/lru"
	"github.com/sevenwiki/sevenmark/parser"
)

// defaultIncludeCacheSize bounds how many distinct (namespace, title)
// parsed include templates Preprocessor keeps in memory at once.
const defaultIncludeCacheSize = 512

// Preprocessor runs spec §4.4 against documents fetched through a single
// DocumentStore. It is safe for concurrent use: the include-template
// cache and in-flight fetch coalescing are both designed to be shared
// across overlapping Preprocess calls (SPEC_FULL.md §3 "a Preprocessor
// is expected to be reused across many concurrent preprocess calls").
type Preprocessor struct {
	store DocumentStore
	cache *lru.Cache[Reference, []*ast.Node]
	group singleflight.Group
}

// NewPreprocessor returns a Preprocessor backed by store, with an
// in-process cache of up to defaultIncludeCacheSize parsed include
// templates.
func NewPreprocessor(store DocumentStore) *Preprocessor {
	return &Preprocessor{store: store, cache: lru.New[Reference, []*ast.Node](defaultIncludeCacheSize)}
}

// Preprocess implements spec §4.4 end to end: substitution (pass 1), own
// metadata and include collection (passes 2–3), include fetch and
// expansion (pass 4), and final reference accumulation (pass 5).
func (p *Preprocessor) Preprocess(ctx context.Context, nodes []*ast.Node) (pre *PreProcessed, err error) {
	defer derrors.Wrap(&err, "Preprocess")

	vars := make(map[string]string)
	expanded := pass1(nodes, vars)

	pre = newPreProcessed(expanded)
	occurrences := pre.collectOwnMetadata(expanded)

	if len(occurrences) > 0 {
		if err := p.expandIncludes(ctx, pre, occurrences); err != nil {
			return nil, err
		}
	}

	pre.accumulateReferences()
	return pre, nil
}

// Process runs Preprocess followed by Postprocess (spec §6 "process =
// postprocess ∘ preprocess").
func (p *Preprocessor) Process(ctx context.Context, nodes []*ast.Node) (*Processed, error) {
	pre, err := p.Preprocess(ctx, nodes)
	if err != nil {
		return nil, err
	}
	return p.Postprocess(ctx, pre)
}

// expandIncludes implements spec §4.4 pass 4: fetch every not-yet-cached
// referenced document in one batch, parse each fetched document
// concurrently (SPEC_FULL.md §3 "one goroutine per document, joined with
// errgroup.Group.Wait"), then run pass 1 on a private clone of each
// occurrence's template with its own parameter-derived variable scope.
func (p *Preprocessor) expandIncludes(ctx context.Context, pre *PreProcessed, occurrences []includeOccurrence) error {
	missing := make(map[Reference]bool)
	for _, occ := range occurrences {
		if _, ok := p.cache.Get(occ.ref); !ok {
			missing[occ.ref] = true
		}
	}

	if len(missing) > 0 {
		refs := make([]Reference, 0, len(missing))
		for r := range missing {
			refs = append(refs, r)
		}
		sort.Slice(refs, func(i, j int) bool { return refKey(refs[i]) < refKey(refs[j]) })

		// Coalesce concurrent Preprocess calls that need the exact same
		// missing set — the common case of the same document being
		// rendered by several requests at once (SPEC_FULL.md §3
		// "coalescing concurrent identical include fetch+parse work").
		v, err, _ := p.group.Do(coalesceKey(refs), func() (any, error) {
			return p.fetchAndParse(ctx, refs)
		})
		if err != nil {
			return fmt.Errorf("%w: %v", derrors.LookupFailure, err)
		}
		parsed := v.(map[Reference][]*ast.Node)
		for ref, nodes := range parsed {
			p.cache.Put(ref, nodes)
		}
	}

	for _, occ := range occurrences {
		template, ok := p.cache.Get(occ.ref)
		if !ok {
			log.Warningf(ctx, "sevenmark: include %s:%q not found, leaving empty", occ.ref.Namespace, occ.ref.Title)
			// occ.node.Children still holds the parsed title text; an
			// unresolved include has no content to show in its place.
			occ.node.Children = nil
			continue
		}

		scope := make(map[string]string)
		if occ.node.Params != nil {
			occ.node.Params.Each(func(param *ast.Parameter) {
				if param.Key == "namespace" {
					return
				}
				scope[param.Key] = ast.PlainText(param.Value)
			})
		}

		expandedInclude := pass1(ast.CloneNodes(template), scope)
		for _, n := range expandedInclude {
			collectMediaWalk(n, pre.media)
		}
		occ.node.Children = expandedInclude
	}
	return nil
}

// fetchAndParse batches the external fetch and parses each returned
// document's content on its own goroutine. Per spec §5 "the observable
// contract is return all requested records or one error": any single
// parse or fetch failure fails the whole call.
func (p *Preprocessor) fetchAndParse(ctx context.Context, refs []Reference) (map[Reference][]*ast.Node, error) {
	docs, err := p.store.FetchDocumentsBatch(ctx, refs)
	if err != nil {
		return nil, err
	}

	parsed := make(map[Reference][]*ast.Node, len(docs))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, d := range docs {
		d := d
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			nodes := parser.Parse(d.Content)
			mu.Lock()
			parsed[d.Ref.Normalize()] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parsed, nil
}

func refKey(r Reference) string {
	return fmt.Sprintf("%d:%s", r.Namespace, r.Title)
}

func coalesceKey(refs []Reference) string {
	keys := make([]string, len(refs))
	for i, r := range refs {
		keys[i] = refKey(r)
	}
	return strings.Join(keys, "|")
}
