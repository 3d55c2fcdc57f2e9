package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("search.max_results", 10))
	val, ok := store.Get("search.max_results")
	require.True(t, ok)
	assert.Equal(t, 10, val)

	require.NoError(t, store.Set("search.max_results", 25))
	assert.Equal(t, 25, store.GetInt("search.max_results"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("storage.backend", "sqlite")
	_ = store.Set("chunking.chunk_size", int64(800))
	_ = store.Set("index.workers", float64(3))
	_ = store.Set("search.semantic_weight", 0.6)
	_ = store.Set("search.keyword_weight", 1)
	_ = store.Set("search.rerank", true)
	_ = store.Set("filters.platforms", []any{"web", 42, "ios"})

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"string", store.GetString("storage.backend"), "sqlite"},
		{"string wrong type", store.GetString("search.rerank"), ""},
		{"int from int64", store.GetInt("chunking.chunk_size"), 800},
		{"int from float64", store.GetInt("index.workers"), 3},
		{"int from fractional float", store.GetInt("search.semantic_weight"), 0},
		{"int wrong type", store.GetInt("storage.backend"), 0},
		{"float", store.GetFloat("search.semantic_weight"), 0.6},
		{"float from int", store.GetFloat("search.keyword_weight"), 1.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("search.rerank"), true},
		{"bool wrong type", store.GetBool("storage.backend"), false},
		{"string slice from []any", store.GetStringSlice("filters.platforms"), []string{"web", "ios"}},
		{"string slice missing", store.GetStringSlice("missing"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", "value")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value", store.GetString("key"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_MultipleInstancesAreIsolated(t *testing.T) {
	a := NewConfigStore()
	b := NewConfigStore()
	_ = a.Set("key", "a")

	assert.Equal(t, "a", a.GetString("key"))
	assert.Empty(t, b.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}

func TestConfigStore_RejectsEmptyKey(t *testing.T) {
	store := NewConfigStore()
	assert.ErrorIs(t, store.Set("", 1), domain.ErrInvalidInput)
	assert.Empty(t, store.Snapshot())
}

func TestConfigStore_SeededAndSnapshotAreCopies(t *testing.T) {
	seed := map[string]any{"search.max_results": 5}
	store := NewConfigStoreFrom(seed)
	seed["search.max_results"] = 99

	assert.Equal(t, 5, store.GetInt("search.max_results"))

	snap := store.Snapshot()
	snap["search.max_results"] = 1
	assert.Equal(t, 5, store.GetInt("search.max_results"))
}

func TestConfigStore_StringSliceIsCopied(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("filters.platforms", []string{"web"})

	got := store.GetStringSlice("filters.platforms")
	got[0] = "ios"

	assert.Equal(t, []string{"web"}, store.GetStringSlice("filters.platforms"))
}
