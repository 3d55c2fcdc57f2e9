package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query          string   `json:"query" jsonschema:"the natural-language search query"`
	Context        string   `json:"context,omitempty" jsonschema:"optional caller context, carried through but not scored"`
	Limit          int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
	Platforms      []string `json:"platforms,omitempty" jsonschema:"keep only documents for these platforms"`
	Categories     []string `json:"categories,omitempty" jsonschema:"keep only documents in these categories"`
	TechStack      []string `json:"tech_stack,omitempty" jsonschema:"keep only documents sharing one of these technology tags"`
	Since          string   `json:"since,omitempty" jsonschema:"keep documents updated on or after this date (YYYY-MM-DD or RFC 3339)"`
	Until          string   `json:"until,omitempty" jsonschema:"keep documents updated on or before this date (YYYY-MM-DD or RFC 3339)"`
	SemanticWeight *float64 `json:"semantic_weight,omitempty" jsonschema:"weight of the vector similarity score"`
	KeywordWeight  *float64 `json:"keyword_weight,omitempty" jsonschema:"weight of the keyword score"`
	Rerank         *bool    `json:"rerank,omitempty" jsonschema:"apply the structural re-ranking boosts"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query       string               `json:"query"`
	Results     []SearchResultOutput `json:"results"`
	Count       int                  `json:"count"`
	Suggestions []string             `json:"suggestions"`
	Stats       SearchStatsOutput    `json:"stats"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ChunkID        string  `json:"chunk_id"`
	DocumentID     string  `json:"document_id"`
	Content        string  `json:"content"`
	Score          float64 `json:"score"`
	RelevanceScore float64 `json:"relevance_score"`
	MatchType      string  `json:"match_type"`
	Source         string  `json:"source,omitempty"`
	Platform       string  `json:"platform,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// SearchStatsOutput describes how the search executed.
type SearchStatsOutput struct {
	TotalDocuments   int   `json:"total_documents"`
	SearchTimeMS     int64 `json:"search_time_ms"`
	SemanticResults  int   `json:"semantic_results"`
	KeywordResults   int   `json:"keyword_results"`
	RerankingApplied bool  `json:"reranking_applied"`
}

// StatsInput is the (empty) input schema for the stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	TotalDocuments int  `json:"total_documents"`
	TotalChunks    int  `json:"total_chunks"`
	VocabularySize int  `json:"vocabulary_size"`
	IsIndexed      bool `json:"is_indexed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Hybrid semantic and keyword search over the indexed platform corpus",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats",
		Description: "Report document, chunk and vocabulary counts of the current index",
	}, s.handleStats)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts, err := input.options()
	if err != nil {
		return nil, SearchOutput{}, err
	}

	resp, err := s.ports.Retrieval.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search: %w", err)
	}

	return nil, toSearchOutput(resp), nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	return nil, toStatsOutput(s.ports.Retrieval.Stats(ctx)), nil
}

// options converts tool input into facade search options.
func (in SearchInput) options() (*domain.SearchOptions, error) {
	dates, err := domain.ParseDateRange(in.Since, in.Until)
	if err != nil {
		return nil, err
	}

	opts := &domain.SearchOptions{
		Context: in.Context,
		Config: &domain.SearchConfig{
			SemanticWeight: in.SemanticWeight,
			KeywordWeight:  in.KeywordWeight,
			RerankResults:  in.Rerank,
		},
	}
	if in.Limit > 0 {
		opts.Config.MaxResults = domain.Int(in.Limit)
	}

	filters := &domain.SearchFilters{
		Platforms:  in.Platforms,
		Categories: in.Categories,
		TechStack:  in.TechStack,
		DateRange:  dates,
	}
	if !filters.IsEmpty() {
		opts.Filters = filters
	}
	return opts, nil
}

func toSearchOutput(resp *domain.SearchResponse) SearchOutput {
	out := SearchOutput{
		Query:       resp.Query,
		Results:     make([]SearchResultOutput, len(resp.Results)),
		Count:       len(resp.Results),
		Suggestions: resp.Suggestions,
		Stats: SearchStatsOutput{
			TotalDocuments:   resp.SearchStats.TotalDocuments,
			SearchTimeMS:     resp.SearchStats.SearchTime.Milliseconds(),
			SemanticResults:  resp.SearchStats.SemanticResultsCount,
			KeywordResults:   resp.SearchStats.KeywordResultsCount,
			RerankingApplied: resp.SearchStats.RerankingApplied,
		},
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}

	for i, r := range resp.Results {
		out.Results[i] = SearchResultOutput{
			ChunkID:        r.ID,
			DocumentID:     r.Metadata.DocumentID,
			Content:        r.Content,
			Score:          r.Score,
			RelevanceScore: r.RelevanceScore,
			MatchType:      r.Metadata.MatchType.String(),
			Source:         r.Source,
			Platform:       r.Metadata.Platform,
			Category:       r.Metadata.Category,
		}
	}
	return out
}

func toStatsOutput(stats domain.IndexStats) StatsOutput {
	return StatsOutput{
		TotalDocuments: stats.TotalDocuments,
		TotalChunks:    stats.TotalChunks,
		VocabularySize: stats.VocabularySize,
		IsIndexed:      stats.IsIndexed,
	}
}
