// Package transform implements the two-phase transformer of spec §4.4–§4.5:
// Preprocess (define/if/variable substitution, metadata collection, include
// fetch and expansion, reference accumulation) and Postprocess (media
// resolution), driven against an opaque DocumentStore capability supplied
// by the caller (spec §6 "the handles are opaque capabilities the
// transformer invokes exactly through two methods").
package transform

import (
	"context"

	"golang.org/x/text/unicode/norm"
)

// Namespace is one of the four reference kinds named in spec §4.4 pass 3.
// An unrecognised namespace string defaults to Document.
type Namespace int

const (
	Document Namespace = iota
	File
	Category
	User
)

var namespaceNames = map[Namespace]string{
	Document: "document",
	File:     "file",
	Category: "category",
	User:     "user",
}

func (n Namespace) String() string {
	if s, ok := namespaceNames[n]; ok {
		return s
	}
	return "document"
}

// ParseNamespace maps a namespace parameter string to its enum value,
// defaulting to Document for anything unrecognised (spec §4.4 pass 3
// "unknown values default to Document").
func ParseNamespace(s string) Namespace {
	switch s {
	case "file":
		return File
	case "category":
		return Category
	case "user":
		return User
	default:
		return Document
	}
}

// Reference is a (namespace, title) key identifying another document,
// file, category, or user (spec §4.4 pass 3, §6).
type Reference struct {
	Namespace Namespace
	Title     string
}

// Normalize returns r with its Title NFC-normalized, so that
// Unicode-equivalent titles collide when used as map/set keys (SPEC_FULL.md
// §3 "reference-key normalization... stable across Unicode-equivalent
// titles").
func (r Reference) Normalize() Reference {
	return Reference{Namespace: r.Namespace, Title: norm.NFC.String(r.Title)}
}

// Doc is one fetched include document: its reference key and raw source
// text (spec §6 "fetch_documents_batch... returns content strings plus
// namespace/title keys").
type Doc struct {
	Ref     Reference
	Content string
}

// Existence is the result of a document-existence check (spec §6
// "check_documents_exist... returns validity plus, for File,
// file_url/width/height").
type Existence struct {
	Ref     Reference
	IsValid bool
	FileURL string
	Width   int
	Height  int
}

// DocumentStore is the opaque capability the transformer invokes through
// exactly two methods (spec §6). Implementations may batch, cache, or farm
// out per-document work internally; the transformer's only contract is
// "return all requested records or one error" (spec §5).
type DocumentStore interface {
	FetchDocumentsBatch(ctx context.Context, refs []Reference) ([]Doc, error)
	CheckDocumentsExist(ctx context.Context, refs []Reference) ([]Existence, error)
}
