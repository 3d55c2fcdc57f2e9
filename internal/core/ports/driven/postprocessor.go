package driven

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// PostProcessor is one stage of chunk production, such as sentence chunking
// or keyword and summary enrichment.
type PostProcessor interface {
	// Name identifies the stage in settings and errors.
	Name() string

	// Process returns the chunks for doc. A creating stage receives nil and
	// returns new chunks; an annotating stage receives the previous stage's
	// chunks and returns them updated.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline produces the final chunks of a document.
// The search engine chunks every document through it during indexing.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
