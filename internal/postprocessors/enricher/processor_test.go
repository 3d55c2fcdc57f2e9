package enricher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
)

var _ driven.PostProcessor = (*Processor)(nil)

func TestNew_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, "enricher", p.Name())
	assert.Equal(t, 10, p.maxKeywords)
	assert.Equal(t, 150, p.summaryLength)

	p = New(WithMaxKeywords(0), WithSummaryLength(-5))
	assert.Equal(t, 10, p.maxKeywords)
	assert.Equal(t, 150, p.summaryLength)
}

func TestProcess_AnnotatesChunks(t *testing.T) {
	p := New(WithMaxKeywords(2), WithSummaryLength(30))
	doc := &domain.Document{ID: "d", Content: "Redis caches keys. Redis persists snapshots."}
	chunks := []domain.Chunk{
		{ID: "c1", Content: "Redis caches keys. Redis persists snapshots."},
		{ID: "c2", Content: ""},
	}

	got, err := p.Process(context.Background(), doc, chunks)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"redis", "caches"}, got[0].Metadata.Keywords)
	assert.Equal(t, "Redis caches keys", got[0].Metadata.Summary)
	assert.Empty(t, got[1].Metadata.Keywords)
	assert.Equal(t, "", got[1].Metadata.Summary)
	assert.Equal(t, 6, doc.Metadata.WordCount)
}

func TestProcess_KeepsExistingWordCount(t *testing.T) {
	doc := &domain.Document{Content: "one two three", Metadata: domain.DocumentMetadata{WordCount: 99}}
	_, err := New().Process(context.Background(), doc, nil)
	require.NoError(t, err)
	assert.Equal(t, 99, doc.Metadata.WordCount)
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, &domain.Document{}, []domain.Chunk{{Content: "text"}})
	assert.ErrorIs(t, err, context.Canceled)
}
