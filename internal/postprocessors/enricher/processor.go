// Package enricher annotates chunks with keywords and a short summary.
package enricher

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// Processor fills ChunkMetadata.Keywords and ChunkMetadata.Summary.
// It implements the PostProcessor interface and expects chunks from an
// earlier stage.
type Processor struct {
	maxKeywords   int
	summaryLength int
}

// Option configures the enricher.
type Option func(*Processor)

// WithMaxKeywords caps the keywords stored per chunk.
func WithMaxKeywords(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxKeywords = n
		}
	}
}

// WithSummaryLength caps the summary length in characters.
func WithSummaryLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.summaryLength = n
		}
	}
}

// New creates an enricher.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxKeywords:   textproc.DefaultMaxKeywords,
		summaryLength: textproc.DefaultSummaryLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "enricher"
}

// Process annotates each chunk in place and records the document word count.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Metadata.WordCount == 0 {
		doc.Metadata.WordCount = textproc.WordCount(doc.Content)
	}

	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunks[i].Metadata.Keywords = textproc.ExtractKeywords(chunks[i].Content, p.maxKeywords)
		chunks[i].Metadata.Summary = textproc.GenerateSummary(chunks[i].Content, p.summaryLength)
	}
	return chunks, nil
}
