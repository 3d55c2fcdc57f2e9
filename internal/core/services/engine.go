package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// ErrPipelineRequired is returned when the engine is built without a chunking pipeline.
var ErrPipelineRequired = errors.New("post-processor pipeline is required")

// HybridSearchEngine indexes documents and answers hybrid queries.
//
// Each IndexDocuments call builds a complete new index and publishes it
// atomically. Search reads whichever index is current and never blocks on a
// rebuild. Rebuilds are serialised.
type HybridSearchEngine struct {
	pipeline driven.PostProcessorPipeline
	defaults domain.EffectiveSearchConfig
	workers  int
	pool     *ants.Pool

	writeMu sync.Mutex
	current atomic.Pointer[indexSnapshot]
}

// EngineOption configures a HybridSearchEngine.
type EngineOption func(*HybridSearchEngine)

// WithWorkers sets the number of goroutines computing embeddings.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithWorkers(n int) EngineOption {
	return func(e *HybridSearchEngine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSearchDefaults sets the configuration used for options a query leaves unset.
func WithSearchDefaults(cfg domain.EffectiveSearchConfig) EngineOption {
	return func(e *HybridSearchEngine) {
		if cfg.MaxResults > 0 {
			e.defaults = cfg
		}
	}
}

// NewHybridSearchEngine creates an engine that chunks documents with pipeline.
// Call Release when the engine is no longer needed.
func NewHybridSearchEngine(pipeline driven.PostProcessorPipeline, opts ...EngineOption) (*HybridSearchEngine, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	e := &HybridSearchEngine{
		pipeline: pipeline,
		defaults: domain.DefaultSearchConfig(),
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return nil, fmt.Errorf("create embedding pool: %w", err)
	}
	e.pool = pool
	return e, nil
}

// Release stops the embedding workers. The engine can still serve searches
// against its current index but can no longer index.
func (e *HybridSearchEngine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// IsIndexed reports whether an index has been published.
func (e *HybridSearchEngine) IsIndexed() bool {
	return e.current.Load() != nil
}

// Stats returns statistics of the current index.
func (e *HybridSearchEngine) Stats() domain.IndexStats {
	return e.current.Load().stats()
}

// IndexDocuments builds a new index over docs and publishes it.
//
// Documents that fail to chunk are indexed without chunks. The only errors
// are cancellation of ctx and a released worker pool; in both cases the
// previous index stays current.
func (e *HybridSearchEngine) IndexDocuments(ctx context.Context, docs []domain.Document) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	logger.Section("Indexing")
	start := time.Now()

	snap, err := e.build(ctx, docs)
	if err != nil {
		logger.Warn("Indexing aborted: %v", err)
		return fmt.Errorf("index documents: %w", err)
	}

	e.current.Store(snap)
	logger.Info("Indexed %d documents, %d chunks, %d terms in %s",
		len(snap.documents), len(snap.chunks), snap.vocabulary.Len(), time.Since(start).Round(time.Millisecond))
	return nil
}

// build runs both indexing passes into a fresh snapshot.
func (e *HybridSearchEngine) build(ctx context.Context, docs []domain.Document) (*indexSnapshot, error) {
	docs = dedupeDocuments(withDocumentIDs(docs))

	snap := &indexSnapshot{
		documents:  make([]*domain.Document, 0, len(docs)),
		byID:       make(map[string]*domain.Document, len(docs)),
		vocabulary: textproc.NewVocabulary(),
	}

	// Pass 1: chunk every document and grow the vocabulary.
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc := cloneDocument(docs[i])
		chunks, err := e.pipeline.Process(ctx, doc)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn("Chunking document %s failed, indexing without chunks: %v", doc.ID, err)
			chunks = nil
		}
		doc.Chunks = chunks

		for j := range doc.Chunks {
			snap.vocabulary.AddText(doc.Chunks[j].Content)
		}
		snap.documents = append(snap.documents, doc)
		snap.byID[doc.ID] = doc
	}

	for _, doc := range snap.documents {
		for j := range doc.Chunks {
			snap.chunks = append(snap.chunks, newIndexedChunk(&doc.Chunks[j], doc))
		}
	}
	logger.Debug("Pass 1: %d documents, %d chunks, vocabulary %d", len(snap.documents), len(snap.chunks), snap.vocabulary.Len())

	// Pass 2: embeddings against the complete vocabulary.
	if err := e.embed(ctx, snap); err != nil {
		return nil, err
	}
	logger.Debug("Pass 2: embedded %d chunks with %d workers", len(snap.chunks), e.workers)

	snap.builtAt = time.Now()
	return snap, nil
}

// embed fills every chunk embedding using the worker pool.
func (e *HybridSearchEngine) embed(ctx context.Context, snap *indexSnapshot) error {
	defer logger.Timed("Embedding")()

	var wg sync.WaitGroup
	var submitErr error

	for i := range snap.chunks {
		if ctx.Err() != nil {
			break
		}
		c := snap.chunks[i].chunk
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			c.Embedding = textproc.TermFrequencyEmbedding(c.Content, snap.vocabulary)
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit embedding task: %w", err)
			break
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return submitErr
}

// withDocumentIDs assigns a positional ID to documents that have none.
func withDocumentIDs(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = fmt.Sprintf("document-%d", i)
		}
	}
	return out
}
