package driving

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// RetrievalService is the public entry point to hybrid retrieval.
type RetrievalService interface {
	// Initialize replaces the corpus with documents mapped from records and
	// rebuilds the index.
	Initialize(ctx context.Context, records []domain.PlatformRecord) error

	// AddDocuments appends documents to the corpus and rebuilds the full index.
	AddDocuments(ctx context.Context, docs []domain.Document) error

	// AddRecords maps records to documents and adds them.
	AddRecords(ctx context.Context, records []domain.PlatformRecord) error

	// Reload rebuilds the index from the stored corpus.
	Reload(ctx context.Context) error

	// Search runs a hybrid query. Options may be nil.
	// Returns domain.ErrNotIndexed before the first successful index.
	Search(ctx context.Context, query string, opts *domain.SearchOptions) (*domain.SearchResponse, error)

	// Stats returns the current index statistics.
	Stats(ctx context.Context) domain.IndexStats

	// Document returns a stored source document.
	// Returns domain.ErrNotFound for unknown IDs.
	Document(ctx context.Context, id string) (*domain.Document, error)
}
