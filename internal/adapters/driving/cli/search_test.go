package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Long(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "hybrid search")
	assert.Contains(t, searchCmd.Long, "semantic")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := executeCommand("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	retrievalService = nil

	_, err := executeCommand("search", "postgres")
	assert.ErrorIs(t, err, errRetrievalNotConfigured)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand("search", "test query")

	require.NoError(t, err)
	assert.Contains(t, out, "Results (1 of 3 documents")
	assert.Contains(t, out, "[1] supabase (hybrid, 0.820)")
	assert.Contains(t, out, "platform: web | category: database | source: platform-records")
	assert.Contains(t, out, "Open source Postgres")
	assert.Contains(t, out, "Related searches:")
	assert.Contains(t, out, "- test query tutorial")

	assert.Equal(t, "test query", mock.lastQuery)
	require.NotNil(t, mock.lastOptions)
	assert.Nil(t, mock.lastOptions.Filters)
	assert.Nil(t, mock.lastOptions.Config.MaxResults)
	assert.Nil(t, mock.lastOptions.Config.SemanticWeight)
	assert.Nil(t, mock.lastOptions.Config.RerankResults)
}

func TestSearchCmd_ConfigFlags(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand("search", "-n", "5", "--semantic-weight", "0.4", "--keyword-weight", "0", "--no-rerank", "postgres")
	require.NoError(t, err)

	cfg := mock.lastOptions.Config
	require.NotNil(t, cfg.MaxResults)
	assert.Equal(t, 5, *cfg.MaxResults)
	require.NotNil(t, cfg.SemanticWeight)
	assert.Equal(t, 0.4, *cfg.SemanticWeight)
	require.NotNil(t, cfg.KeywordWeight)
	assert.Equal(t, 0.0, *cfg.KeywordWeight)
	require.NotNil(t, cfg.RerankResults)
	assert.False(t, *cfg.RerankResults)
}

func TestSearchCmd_FilterFlags(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand("search",
		"--platform", "web", "--platform", "ios",
		"--category", "database",
		"--tech", "Postgres",
		"--since", "2024-01-01", "--until", "2024-06-30",
		"--context", "choosing a backend",
		"postgres")
	require.NoError(t, err)

	opts := mock.lastOptions
	assert.Equal(t, "choosing a backend", opts.Context)
	require.NotNil(t, opts.Filters)
	assert.Equal(t, []string{"web", "ios"}, opts.Filters.Platforms)
	assert.Equal(t, []string{"database"}, opts.Filters.Categories)
	assert.Equal(t, []string{"Postgres"}, opts.Filters.TechStack)
	require.NotNil(t, opts.Filters.DateRange)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), opts.Filters.DateRange.Start)
	assert.True(t, opts.Filters.DateRange.Contains(time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC)))
}

func TestSearchCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative weight", []string{"search", "--semantic-weight", "-1", "q"}},
		{"bad date", []string{"search", "--since", "yesterday", "q"}},
		{"reversed range", []string{"search", "--since", "2024-02-01", "--until", "2024-01-01", "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestServices(t)
			defer cleanup()

			_, err := executeCommand(tt.args...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, mock.lastQuery)
		})
	}
}

func TestSearchCmd_NotIndexed(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()
	mock.searchErr = domain.ErrNotIndexed

	_, err := executeCommand("search", "postgres")

	require.ErrorIs(t, err, domain.ErrNotIndexed)
	assert.Contains(t, err.Error(), "hybrid-rag index")
}

func TestSearchCmd_NoResults(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()
	mock.response = &domain.SearchResponse{Query: "zzz", Results: []domain.SearchResult{}, Suggestions: []string{}}

	out, err := executeCommand("search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
	assert.NotContains(t, out, "Related searches:")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand("search", "--json", "test query")
	require.NoError(t, err)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "supabase", resp.Results[0].Metadata.DocumentID)
	assert.Contains(t, out, `"match_type": "hybrid"`)
}
