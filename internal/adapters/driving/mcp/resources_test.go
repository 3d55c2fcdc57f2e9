package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestParseDocumentURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantID   string
		wantView string
	}{
		{"content URI", "hybrid-rag://documents/doc-456", "doc-456", ""},
		{"metadata URI", "hybrid-rag://documents/doc-456/metadata", "doc-456", "metadata"},
		{"invalid prefix", "file://documents/doc-456", "", ""},
		{"empty URI", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, view := parseDocumentURI(tt.uri)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantView, view)
		})
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	server := newTestServer(t, &mockRetrievalService{
		stats: domain.IndexStats{TotalDocuments: 2, TotalChunks: 4, VocabularySize: 30, IsIndexed: true},
	})

	result, err := server.handleStatsResource(context.Background(), makeReadResourceRequest("hybrid-rag://stats"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var stats StatsOutput
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &stats))
	assert.Equal(t, StatsOutput{TotalDocuments: 2, TotalChunks: 4, VocabularySize: 30, IsIndexed: true}, stats)
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()
	retrieval := &mockRetrievalService{
		documents: map[string]domain.Document{"supabase": {ID: "supabase", Content: "Platform: Supabase."}},
	}
	server := newTestServer(t, retrieval)

	t.Run("returns document content", func(t *testing.T) {
		uri := "hybrid-rag://documents/supabase"
		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest(uri))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Equal(t, "Platform: Supabase.", result.Contents[0].Text)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("hybrid-rag://documents/missing"))
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("hybrid-rag://other"))
		assert.Error(t, err)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		failing := newTestServer(t, &mockRetrievalService{err: errors.New("db locked")})
		_, err := failing.handleDocumentContentResource(ctx, makeReadResourceRequest("hybrid-rag://documents/x"))
		assert.ErrorContains(t, err, "db locked")
	})
}

func TestServer_handleDocumentMetadataResource(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	server := newTestServer(t, &mockRetrievalService{
		documents: map[string]domain.Document{"supabase": {
			ID:      "supabase",
			Content: "Platform: Supabase.",
			Metadata: domain.DocumentMetadata{
				Title:       "Supabase",
				Category:    "database",
				Platform:    "web",
				Source:      "platform-records",
				LastUpdated: updated,
				WordCount:   2,
			},
		}},
	})

	result, err := server.handleDocumentMetadataResource(ctx, makeReadResourceRequest("hybrid-rag://documents/supabase/metadata"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var meta DocumentMetadataOutput
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &meta))
	assert.Equal(t, DocumentMetadataOutput{
		ID:          "supabase",
		Title:       "Supabase",
		Category:    "database",
		Platform:    "web",
		Source:      "platform-records",
		LastUpdated: "2024-03-01T12:00:00Z",
		WordCount:   2,
	}, meta)

	_, err = server.handleDocumentMetadataResource(ctx, makeReadResourceRequest("hybrid-rag://documents/supabase"))
	assert.Error(t, err)
}
