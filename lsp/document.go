// Copyright © 2024 The ELPS authors

package lsp

import (
	"sync"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/parser"
)

// Document is an open text document tracked by the server.
type Document struct {
	mu       sync.Mutex
	URI      string
	Version  int32
	Content  string
	terms    []*lang.Term
	parseErr error
}

// parse parses the document content.  The terms before a syntax error are
// kept so that requests still work on a partially edited document.
func (d *Document) parse() {
	d.terms, d.parseErr = parser.Parse(uriToPath(d.URI), []byte(d.Content))
}

// snapshot returns the document state under the lock.
func (d *Document) snapshot() (content string, terms []*lang.Term, parseErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Content, d.terms, d.parseErr
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and parses it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	doc.parse()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change replaces a document's content and re-parses it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.parse()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI.  Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
