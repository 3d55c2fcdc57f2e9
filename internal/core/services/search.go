package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// maxSuggestions caps the suggestion list of a response.
const maxSuggestions = 5

// Search runs the hybrid pipeline against the current index.
//
// It fails with domain.ErrNotIndexed until the first index is published.
// A blank query is not an error: it returns no results with stats filled in.
func (e *HybridSearchEngine) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error) {
	start := time.Now()
	logger.Section("Search Execution")
	logger.Debug("Query: %q", q.Query)

	snap := e.current.Load()
	if snap == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrNotIndexed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	cfg := q.Config.Resolve(e.defaults)
	logger.Debug("Weights: semantic=%.2f keyword=%.2f, limit=%d, rerank=%t",
		cfg.SemanticWeight, cfg.KeywordWeight, cfg.MaxResults, cfg.RerankResults)

	resp := &domain.SearchResponse{
		Query:       q.Query,
		Results:     []domain.SearchResult{},
		Suggestions: []string{},
		SearchStats: domain.SearchStats{TotalDocuments: len(snap.documents)},
	}

	query := strings.TrimSpace(q.Query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		resp.SearchStats.SearchTime = time.Since(start)
		return resp, nil
	}

	queryVec := textproc.TermFrequencyEmbedding(query, snap.vocabulary)
	semantic := snap.semanticSearch(queryVec, q.Filters)
	logger.Debug("Semantic results: %d", len(semantic))

	keyword := snap.keywordSearch(query, q.Filters)
	logger.Debug("Keyword results: %d", len(keyword))

	results := fuse(semantic, keyword, cfg)
	logger.Debug("Fused results: %d", len(results))

	if cfg.RerankResults {
		rerank(results, query)
	}
	results = filterAndLimit(results, q.Filters, cfg.MaxResults)

	for _, r := range results {
		resp.Results = append(resp.Results, r.toResult())
	}
	resp.Suggestions = snap.suggestions(query)
	resp.SearchStats.SemanticResultsCount = len(semantic)
	resp.SearchStats.KeywordResultsCount = len(keyword)
	resp.SearchStats.RerankingApplied = cfg.RerankResults
	resp.SearchStats.SearchTime = time.Since(start)

	logger.Info("Final results: %d (%s)", len(resp.Results), resp.SearchStats.SearchTime.Round(time.Microsecond))
	return resp, nil
}

// suggestions returns up to maxSuggestions refinements of query built from
// vocabulary terms that contain, or are contained in, a query token.
// Terms identical to a query token are skipped.
func (s *indexSnapshot) suggestions(query string) []string {
	tokens := textproc.QueryTokens(query)
	out := []string{}
	if len(tokens) == 0 {
		return out
	}

	s.vocabulary.Each(func(term string) bool {
		for _, tok := range tokens {
			if term == tok {
				return true
			}
		}
		for _, tok := range tokens {
			if strings.Contains(term, tok) || strings.Contains(tok, term) {
				out = append(out, query+" "+term)
				break
			}
		}
		return len(out) < maxSuggestions
	})
	return out
}
