// Package transformtest supports testing code that depends on
// transform.DocumentStore, the way proxytest and localdatasource support
// testing pkgsite's proxy- and disk-backed data sources. It is an
// in-memory fake, never a real database or object-store driver.
package transformtest

import (
	"context"
	"sync"

	"github.com/sevenwiki/sevenmark/transform"
)

// File is one file's existence record, seeded separately from document
// content because spec §4.5 resolves File references through
// file_url/width/height rather than document content.
type File struct {
	Ref    transform.Reference
	URL    string
	Width  int
	Height int
}

// Store is an in-memory transform.DocumentStore. Create one with New
// (the zero value has no maps to seed); seed it with AddDocument/AddFile
// before handing it to a transform.Preprocessor.
type Store struct {
	mu    sync.Mutex
	docs  map[transform.Reference]string
	files map[transform.Reference]File

	fetchErr  error
	existErr  error
	callCount int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		docs:  make(map[transform.Reference]string),
		files: make(map[transform.Reference]File),
	}
}

// AddDocument seeds the content returned for ref by FetchDocumentsBatch,
// and returns the Store for chaining (mirroring proxytest.Module's
// builder style).
func (s *Store) AddDocument(ref transform.Reference, content string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[ref.Normalize()] = content
	return s
}

// AddFile seeds a file existence record with a resolvable URL.
func (s *Store) AddFile(ref transform.Reference, url string, width, height int) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[ref.Normalize()] = File{Ref: ref, URL: url, Width: width, Height: height}
	return s
}

// FailFetch makes every subsequent FetchDocumentsBatch call return err.
func (s *Store) FailFetch(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
	return s
}

// FailExist makes every subsequent CheckDocumentsExist call return err.
func (s *Store) FailExist(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existErr = err
	return s
}

// FetchCount reports how many times FetchDocumentsBatch has been called,
// for asserting that singleflight coalescing or LRU caching actually
// suppressed redundant fetches.
func (s *Store) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// FetchDocumentsBatch implements transform.DocumentStore. References with
// no seeded document are silently omitted from the result, matching a
// real store reporting a subset of a batch as found.
func (s *Store) FetchDocumentsBatch(ctx context.Context, refs []transform.Reference) ([]transform.Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []transform.Doc
	for _, ref := range refs {
		if content, ok := s.docs[ref.Normalize()]; ok {
			out = append(out, transform.Doc{Ref: ref, Content: content})
		}
	}
	return out, nil
}

// CheckDocumentsExist implements transform.DocumentStore. Every requested
// reference gets a record: File references resolve through the seeded
// File map (IsValid follows from FileURL being set, per spec §4.5);
// every other namespace resolves to whether a document was seeded.
func (s *Store) CheckDocumentsExist(ctx context.Context, refs []transform.Reference) ([]transform.Existence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existErr != nil {
		return nil, s.existErr
	}
	out := make([]transform.Existence, 0, len(refs))
	for _, ref := range refs {
		norm := ref.Normalize()
		if ref.Namespace == transform.File {
			f, ok := s.files[norm]
			if !ok {
				out = append(out, transform.Existence{Ref: ref, IsValid: false})
				continue
			}
			out = append(out, transform.Existence{Ref: ref, IsValid: f.URL != "", FileURL: f.URL, Width: f.Width, Height: f.Height})
			continue
		}
		_, ok := s.docs[norm]
		out = append(out, transform.Existence{Ref: ref, IsValid: ok})
	}
	return out, nil
}
