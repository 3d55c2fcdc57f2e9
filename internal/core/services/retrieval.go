package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driving"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Errors returned by NewRetrievalService.
var (
	ErrEngineRequired = errors.New("search engine is required")
	ErrStoreRequired  = errors.New("document store is required")
)

// RetrievalService is the facade over the corpus and the search engine.
// The corpus lives in a DocumentStore; every change to it rebuilds the
// whole index.
type RetrievalService struct {
	engine   *HybridSearchEngine
	store    driven.DocumentStore
	defaults *domain.SearchConfig

	// mu serialises corpus changes with the rebuild that follows them.
	mu sync.Mutex
}

// RetrievalOption configures a RetrievalService.
type RetrievalOption func(*RetrievalService)

// WithDefaultSearchConfig sets the options applied when a search leaves them unset.
func WithDefaultSearchConfig(cfg *domain.SearchConfig) RetrievalOption {
	return func(s *RetrievalService) {
		s.defaults = cfg
	}
}

// NewRetrievalService creates the facade.
func NewRetrievalService(
	engine *HybridSearchEngine,
	store driven.DocumentStore,
	opts ...RetrievalOption,
) (*RetrievalService, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &RetrievalService{engine: engine, store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize replaces the corpus with the mapped records and indexes it.
func (s *RetrievalService) Initialize(ctx context.Context, records []domain.PlatformRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Initializing corpus from %d records", len(records))

	// On a failed replace the stored corpus and the served index stay paired.
	if err := s.store.ReplaceDocuments(ctx, withGeneratedIDs(MapRecords(records))); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}
	return s.reindex(ctx)
}

// AddDocuments appends docs to the corpus and rebuilds the full index.
// A document whose ID already exists replaces the stored one.
func (s *RetrievalService) AddDocuments(ctx context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Adding %d documents", len(docs))

	if err := s.store.SaveDocuments(ctx, withGeneratedIDs(docs)); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return s.reindex(ctx)
}

// AddRecords maps records to documents and adds them.
func (s *RetrievalService) AddRecords(ctx context.Context, records []domain.PlatformRecord) error {
	return s.AddDocuments(ctx, MapRecords(records))
}

// Reload rebuilds the index from the stored corpus.
func (s *RetrievalService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reindex(ctx)
}

// Search runs a hybrid query, merging opts over the service defaults.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts *domain.SearchOptions,
) (*domain.SearchResponse, error) {
	q := domain.SearchQuery{Query: query, Config: s.defaults.Merge(nil)}
	if opts != nil {
		q.Context = opts.Context
		q.Filters = opts.Filters
		q.Config = opts.Config.Merge(s.defaults)
	}
	return s.engine.Search(ctx, q)
}

// Stats returns the current index statistics.
func (s *RetrievalService) Stats(_ context.Context) domain.IndexStats {
	return s.engine.Stats()
}

// Document returns a stored document by ID.
func (s *RetrievalService) Document(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

func (s *RetrievalService) reindex(ctx context.Context) error {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list corpus: %w", err)
	}
	return s.engine.IndexDocuments(ctx, docs)
}

// withGeneratedIDs gives documents without an ID a random one so the store
// can key them.
func withGeneratedIDs(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}
