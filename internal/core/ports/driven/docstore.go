package driven

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// DocumentStore persists the source corpus the index is built from.
// Chunks and embeddings are derived state and are never stored.
type DocumentStore interface {
	// SaveDocuments inserts or replaces documents by ID.
	// A replaced document keeps its original position in ListDocuments.
	SaveDocuments(ctx context.Context, docs []domain.Document) error

	// ReplaceDocuments atomically swaps the whole corpus for docs. On error
	// the previous corpus is left untouched.
	ReplaceDocuments(ctx context.Context, docs []domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if no document has that ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns every document in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Clear removes all documents.
	Clear(ctx context.Context) error
}
