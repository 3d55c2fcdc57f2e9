package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestStore(t)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "config.toml"), store.Path())

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(dir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("search.max_results")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("search.max_results", 10))
	require.NoError(t, store.Set("search.semantic_weight", 0.7))
	require.NoError(t, store.Set("search.rerank", true))
	require.NoError(t, store.Set("filters.platforms", []string{"web", "ios"}))

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"string", store.GetString("storage.backend"), "sqlite"},
		{"string wrong type", store.GetString("search.max_results"), ""},
		{"int", store.GetInt("search.max_results"), 10},
		{"int wrong type", store.GetInt("storage.backend"), 0},
		{"int from fractional float", store.GetInt("search.semantic_weight"), 0},
		{"float", store.GetFloat("search.semantic_weight"), 0.7},
		{"float from int", store.GetFloat("search.max_results"), 10.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("search.rerank"), true},
		{"bool wrong type", store.GetBool("storage.backend"), false},
		{"string slice", store.GetStringSlice("filters.platforms"), []string{"web", "ios"}},
		{"string slice missing", store.GetStringSlice("missing"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("search.max_results", 25))
	require.NoError(t, store.Set("search.keyword_weight", 0.4))
	require.NoError(t, store.Set("chunking.respect_sentences", false))
	require.NoError(t, store.Set("storage.backend", "memory"))
	require.NoError(t, store.Set("filters.platforms", []string{"web"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[search]")
	assert.Contains(t, string(raw), "[chunking]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 25, reloaded.GetInt("search.max_results"))
	assert.Equal(t, 0.4, reloaded.GetFloat("search.keyword_weight"))
	assert.False(t, reloaded.GetBool("chunking.respect_sentences"))
	_, ok := reloaded.Get("chunking.respect_sentences")
	assert.True(t, ok)
	assert.Equal(t, "memory", reloaded.GetString("storage.backend"))
	assert.Equal(t, []string{"web"}, reloaded.GetStringSlice("filters.platforms"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
chunk_size = 800
overlap_size = 0

[search]
semantic_weight = 1
max_results = 5.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 800, store.GetInt("chunking.chunk_size"))
	assert.Equal(t, 0, store.GetInt("chunking.overlap_size"))
	assert.Equal(t, 1.0, store.GetFloat("search.semantic_weight"))
	assert.Equal(t, 5, store.GetInt("search.max_results"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("search.rerank", true))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetConflictingKeys(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("search.max_results", 10))

	err := store.Set("search", "flat")
	assert.Error(t, err)

	_, ok := store.Get("search")
	assert.False(t, ok, "failed set must not stay in memory")
	assert.Equal(t, 10, store.GetInt("search.max_results"))
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Set("channel", make(chan int))
	assert.Error(t, err)
}

func TestConfigStore_SetWriteError(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
	assert.Error(t, store.Load())
}

func TestConfigStore_SaveExplicit(t *testing.T) {
	store, dir := newTestStore(t)

	store.mu.Lock()
	store.data["index.workers"] = int64(6)
	store.mu.Unlock()
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.GetInt("index.workers"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "worker.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 7, store.GetInt("worker.key7"))
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"top":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"top": true,
	}, nested)

	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "top": true}, flattenMap(nested, ""))
}
