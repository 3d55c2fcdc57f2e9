package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyChunkSize        = "chunking.chunk_size"
	keyOverlapSize      = "chunking.overlap_size"
	keyRespectSentences = "chunking.respect_sentences"
	keySemanticWeight   = "search.semantic_weight"
	keyKeywordWeight    = "search.keyword_weight"
	keyMaxResults       = "search.max_results"
	keyRerank           = "search.rerank"
	keyWorkers          = "index.workers"
	keyKeywordsPerChunk = "index.keywords_per_chunk"
	keySummaryLength    = "index.summary_length"
	keyStorageBackend   = "storage.backend"
	keyWatchDebounceMS  = "watch.debounce_ms"
)

// settingKinds lists every key in display order with the type Set parses.
// Numeric values must be positive unless allowZero is set.
var settingKinds = []struct {
	key       string
	kind      string
	allowZero bool
}{
	{keyChunkSize, "int", false},
	{keyOverlapSize, "int", true},
	{keyRespectSentences, "bool", false},
	{keySemanticWeight, "float", true},
	{keyKeywordWeight, "float", true},
	{keyMaxResults, "int", false},
	{keyRerank, "bool", false},
	{keyWorkers, "int", false},
	{keyKeywordsPerChunk, "int", false},
	{keySummaryLength, "int", false},
	{keyStorageBackend, "string", false},
	{keyWatchDebounceMS, "int", true},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			ChunkSize:        s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			OverlapSize:      s.getNonNegativeInt(keyOverlapSize, defaults.Chunking.OverlapSize),
			RespectSentences: s.getBool(keyRespectSentences, defaults.Chunking.RespectSentences),
		},
		Search: domain.SearchSettings{
			SemanticWeight: s.getWeight(keySemanticWeight, defaults.Search.SemanticWeight),
			KeywordWeight:  s.getWeight(keyKeywordWeight, defaults.Search.KeywordWeight),
			MaxResults:     s.getInt(keyMaxResults, defaults.Search.MaxResults),
			Rerank:         s.getBool(keyRerank, defaults.Search.Rerank),
		},
		Index: domain.IndexSettings{
			Workers:          s.getInt(keyWorkers, defaults.Index.Workers),
			KeywordsPerChunk: s.getInt(keyKeywordsPerChunk, defaults.Index.KeywordsPerChunk),
			SummaryLength:    s.getInt(keySummaryLength, defaults.Index.SummaryLength),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
		},
		Watch: domain.WatchSettings{
			Debounce: time.Duration(s.getNonNegativeInt(keyWatchDebounceMS, int(defaults.Watch.Debounce/time.Millisecond))) * time.Millisecond,
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyChunkSize, settings.Chunking.ChunkSize},
		{keyOverlapSize, settings.Chunking.OverlapSize},
		{keyRespectSentences, settings.Chunking.RespectSentences},
		{keySemanticWeight, settings.Search.SemanticWeight},
		{keyKeywordWeight, settings.Search.KeywordWeight},
		{keyMaxResults, settings.Search.MaxResults},
		{keyRerank, settings.Search.Rerank},
		{keyWorkers, settings.Index.Workers},
		{keyKeywordsPerChunk, settings.Index.KeywordsPerChunk},
		{keySummaryLength, settings.Index.SummaryLength},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyWatchDebounceMS, int(settings.Watch.Debounce / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type, checks its range and
// persists it.
func (s *SettingsService) Set(key, value string) error {
	idx := -1
	for i, k := range settingKinds {
		if k.key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	kind := settingKinds[idx]

	var parsed any
	var num float64
	var err error
	switch kind.kind {
	case "int":
		var n int
		n, err = strconv.Atoi(value)
		parsed, num = n, float64(n)
	case "float":
		num, err = strconv.ParseFloat(value, 64)
		parsed = num
	case "bool":
		parsed, err = strconv.ParseBool(value)
	default:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("setting %s: unknown backend %q: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("setting %s: parse %q as %s: %w", key, value, kind.kind, domain.ErrInvalidInput)
	}
	if num < 0 || (num == 0 && !kind.allowZero && (kind.kind == "int" || kind.kind == "float")) {
		return fmt.Errorf("setting %s: value %s out of range: %w", key, value, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported settings keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for _, k := range settingKinds {
		keys = append(keys, k.key)
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetPipelineConfig returns the post-processor pipeline configuration
// derived from the current settings.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultPipelineConfig()
	}
	return domain.PipelineConfigFor(*settings)
}

// SearchDefaults returns the stored search settings as a per-query config.
func (s *SettingsService) SearchDefaults() *domain.SearchConfig {
	settings, err := s.Get()
	if err != nil {
		return nil
	}
	return &domain.SearchConfig{
		SemanticWeight: domain.Float64(settings.Search.SemanticWeight),
		KeywordWeight:  domain.Float64(settings.Search.KeywordWeight),
		MaxResults:     domain.Int(settings.Search.MaxResults),
		RerankResults:  domain.Bool(settings.Search.Rerank),
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getWeight accepts zero; only missing or negative values fall back.
func (s *SettingsService) getWeight(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
