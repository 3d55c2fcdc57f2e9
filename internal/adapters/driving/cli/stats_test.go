package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

func TestStatsCmd_Indexed(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand("stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Index: ready")
	assert.Contains(t, out, "Documents:  3")
	assert.Contains(t, out, "Chunks:     4")
	assert.Contains(t, out, "Vocabulary: 42")
}

func TestStatsCmd_NotIndexed(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()
	mock.stats = domain.IndexStats{}

	out, err := executeCommand("stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Index: not built")
}

func TestStatsCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand("stats", "--json")
	require.NoError(t, err)

	var stats domain.IndexStats
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &stats))
	assert.Equal(t, domain.IndexStats{TotalDocuments: 3, TotalChunks: 4, VocabularySize: 42, IsIndexed: true}, stats)
}

func TestStatsCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	retrievalService = nil

	_, err := executeCommand("stats")
	assert.ErrorIs(t, err, errRetrievalNotConfigured)
}
