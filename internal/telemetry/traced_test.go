package telemetry

import (
	"context"
	"testing"

	"go.opencensus.io/stats/view"

	"github.com/sevenwiki/sevenmark/ast"
	"github.com/sevenwiki/sevenmark/parser"
	"github.com/sevenwiki/sevenmark/transform"
	"github.com/sevenwiki/sevenmark/transform/transformtest"
)

func TestParseTracedReturnsSameShapeAsParse(t *testing.T) {
	nodes := ParseTraced(context.Background(), "plain text")
	if len(nodes) != 1 || nodes[0].Kind != ast.KindText {
		t.Errorf("ParseTraced(%q) = %+v, want single Text node", "plain text", nodes)
	}
}

func TestParseTracedCountsRecursionOverflow(t *testing.T) {
	if err := view.Register(RecursionOverflowCount); err != nil {
		t.Fatalf("view.Register: %v", err)
	}
	defer view.Unregister(RecursionOverflowCount)

	deep := ""
	for i := 0; i < 64; i++ {
		deep += "{{{#blockquote"
	}
	deep += "x"
	for i := 0; i < 64; i++ {
		deep += "}}}"
	}

	ParseTraced(context.Background(), deep, parser.WithMaxRecursionDepth(2))

	rows, err := view.RetrieveData(RecursionOverflowCount.Name)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no recursion-overflow rows recorded, want at least one")
	}
	count := rows[0].Data.(*view.CountData).Value
	if count <= 0 {
		t.Errorf("RecursionOverflowCount = %d, want > 0", count)
	}
}

func TestTracedStoreDelegatesToUnderlyingStore(t *testing.T) {
	ref := transform.Reference{Namespace: transform.Document, Title: "Other"}
	store := transformtest.New().AddDocument(ref, "body")
	traced := TracedStore{Store: store}

	docs, err := traced.FetchDocumentsBatch(context.Background(), []transform.Reference{ref})
	if err != nil {
		t.Fatalf("FetchDocumentsBatch: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "body" {
		t.Errorf("FetchDocumentsBatch = %+v, want one doc with content %q", docs, "body")
	}

	existence, err := traced.CheckDocumentsExist(context.Background(), []transform.Reference{ref})
	if err != nil {
		t.Fatalf("CheckDocumentsExist: %v", err)
	}
	if len(existence) != 1 || !existence[0].IsValid {
		t.Errorf("CheckDocumentsExist = %+v, want one valid row", existence)
	}
}
