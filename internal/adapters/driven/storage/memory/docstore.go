package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// The corpus is lost when the process exits.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	order     []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocuments inserts or replaces documents by ID.
func (s *DocumentStore) SaveDocuments(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if _, exists := s.documents[doc.ID]; !exists {
			s.order = append(s.order, doc.ID)
		}
		s.documents[doc.ID] = copyDocument(doc)
	}
	return nil
}

// ReplaceDocuments swaps the corpus for docs under one lock.
func (s *DocumentStore) ReplaceDocuments(ctx context.Context, docs []domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	documents := make(map[string]domain.Document, len(docs))
	order := make([]string, 0, len(docs))
	for _, doc := range docs {
		if _, exists := documents[doc.ID]; !exists {
			order = append(order, doc.ID)
		}
		documents[doc.ID] = copyDocument(doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = documents
	s.order = order
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyDocument(doc)
	return &out, nil
}

// ListDocuments returns every document in insertion order.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, copyDocument(s.documents[id]))
	}
	return docs, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Clear removes all documents.
func (s *DocumentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]domain.Document)
	s.order = nil
	return nil
}

// copyDocument drops derived chunks and detaches slices from the caller.
func copyDocument(doc domain.Document) domain.Document {
	doc.Chunks = nil
	doc.Metadata.TechStack = append([]string(nil), doc.Metadata.TechStack...)
	return doc
}
