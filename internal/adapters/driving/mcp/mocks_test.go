package mcp

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driving"
)

var _ driving.RetrievalService = (*mockRetrievalService)(nil)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	response  *domain.SearchResponse
	stats     domain.IndexStats
	documents map[string]domain.Document
	err       error

	lastQuery   string
	lastOptions *domain.SearchOptions
}

func (m *mockRetrievalService) Initialize(_ context.Context, _ []domain.PlatformRecord) error {
	return m.err
}

func (m *mockRetrievalService) AddDocuments(_ context.Context, _ []domain.Document) error {
	return m.err
}

func (m *mockRetrievalService) AddRecords(_ context.Context, _ []domain.PlatformRecord) error {
	return m.err
}

func (m *mockRetrievalService) Reload(_ context.Context) error {
	return m.err
}

func (m *mockRetrievalService) Search(
	_ context.Context,
	query string,
	opts *domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOptions = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}, Suggestions: []string{}}, nil
	}
	return m.response, nil
}

func (m *mockRetrievalService) Stats(_ context.Context) domain.IndexStats {
	return m.stats
}

func (m *mockRetrievalService) Document(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}
