package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// StorageBackend selects where the source corpus is kept between runs.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendMemory keeps the corpus in process memory only.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSQLite persists the corpus in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendMemory, StorageBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendMemory:
		return "Memory (corpus lost on exit)"
	case StorageBackendSQLite:
		return "SQLite (corpus persisted on disk)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings controls how documents are split into chunks.
type ChunkingSettings struct {
	// ChunkSize is the maximum number of characters per chunk.
	ChunkSize int

	// OverlapSize is the number of trailing characters carried into the next chunk.
	OverlapSize int

	// RespectSentences keeps sentence boundaries intact when true.
	RespectSentences bool
}

// SearchSettings holds the default search behaviour.
// Per-query SearchConfig values override these.
type SearchSettings struct {
	SemanticWeight float64
	KeywordWeight  float64
	MaxResults     int
	Rerank         bool
}

// Effective converts the settings into a resolved search config.
func (s SearchSettings) Effective() EffectiveSearchConfig {
	return EffectiveSearchConfig{
		SemanticWeight: s.SemanticWeight,
		KeywordWeight:  s.KeywordWeight,
		MaxResults:     s.MaxResults,
		RerankResults:  s.Rerank,
	}
}

// IndexSettings controls the indexing pass.
type IndexSettings struct {
	// Workers is the size of the embedding worker pool.
	Workers int

	// KeywordsPerChunk caps the keywords stored on each chunk.
	KeywordsPerChunk int

	// SummaryLength is the maximum summary length in characters.
	SummaryLength int
}

// StorageSettings selects the corpus store.
type StorageSettings struct {
	Backend StorageBackend
}

// WatchSettings controls the records file watcher.
type WatchSettings struct {
	// Debounce collapses bursts of file events into one re-index.
	Debounce time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Chunking ChunkingSettings
	Search   SearchSettings
	Index    IndexSettings
	Storage  StorageSettings
	Watch    WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			ChunkSize:        1000,
			OverlapSize:      200,
			RespectSentences: true,
		},
		Search: SearchSettings{
			SemanticWeight: DefaultSemanticWeight,
			KeywordWeight:  DefaultKeywordWeight,
			MaxResults:     DefaultMaxResults,
			Rerank:         DefaultRerankResults,
		},
		Index: IndexSettings{
			Workers:          4,
			KeywordsPerChunk: 10,
			SummaryLength:    150,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Watch: WatchSettings{
			Debounce: 250 * time.Millisecond,
		},
	}
}

// Validate checks settings for values the engine cannot work with.
// Weights only need to be non-negative; they are not normalised.
func (s AppSettings) Validate() error {
	if s.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunking.OverlapSize < 0 {
		return fmt.Errorf("%w: overlap size must not be negative", ErrInvalidInput)
	}
	if s.Search.SemanticWeight < 0 || s.Search.KeywordWeight < 0 {
		return fmt.Errorf("%w: search weights must not be negative", ErrInvalidInput)
	}
	if s.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive", ErrInvalidInput)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	return nil
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendMemory,
		StorageBackendSQLite,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor derives the chunking pipeline from application settings.
func PipelineConfigFor(s AppSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker", "enricher"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size":        s.Chunking.ChunkSize,
				"overlap":           s.Chunking.OverlapSize,
				"respect_sentences": s.Chunking.RespectSentences,
			},
			"enricher": {
				"max_keywords":   s.Index.KeywordsPerChunk,
				"summary_length": s.Index.SummaryLength,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultAppSettings())
}
