package telemetry

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/parser"
	"github.com/sevenwiki/sevenmark/transform"
)

var (
	recursionOverflowCount = stats.Int64(
		"sevenmark/recursion_overflow_count",
		"Count of parser constructs rejected for exceeding the recursion depth limit.",
		stats.UnitDimensionless,
	)
	// RecursionOverflowCount counts parser recursion-depth rejections.
	RecursionOverflowCount = &view.View{
		Name:        "sevenmark/recursion_overflow/count",
		Measure:     recursionOverflowCount,
		Aggregation: view.Count(),
		Description: "Count of sevenmark parser recursion-depth overflows",
	}
)

func init() {
	Views = append(Views, RecursionOverflowCount)
}

// ParseTraced runs parser.Parse under a "sevenmark.parse" span, recording
// its latency/outcome and counting any recursion-depth overflows it
// triggers along the way.
func ParseTraced(ctx context.Context, source string, opts ...parser.Option) []*ast.Node {
	ctx, done := Track(ctx, "parse")
	opts = append(opts, parser.WithRecursionOverflowHook(func() {
		stats.Record(ctx, recursionOverflowCount.M(1))
	}))
	nodes := parser.Parse(source, opts...)
	done(nil)
	return nodes
}

// TracedStore wraps a transform.DocumentStore, recording a span and
// latency measurement around each of the two suspension points named in
// spec.md §5: fetch_documents_batch and check_documents_exist.
type TracedStore struct {
	Store transform.DocumentStore
}

var _ transform.DocumentStore = TracedStore{}

func (t TracedStore) FetchDocumentsBatch(ctx context.Context, refs []transform.Reference) (docs []transform.Doc, err error) {
	ctx, done := Track(ctx, "fetch_documents_batch")
	defer func() { done(err) }()
	docs, err = t.Store.FetchDocumentsBatch(ctx, refs)
	return docs, err
}

func (t TracedStore) CheckDocumentsExist(ctx context.Context, refs []transform.Reference) (existence []transform.Existence, err error) {
	ctx, done := Track(ctx, "check_documents_exist")
	defer func() { done(err) }()
	existence, err = t.Store.CheckDocumentsExist(ctx, refs)
	return existence, err
}
