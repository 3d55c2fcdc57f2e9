package postprocessors

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
	"github.com/custodia-labs/hybrid-rag/internal/postprocessors/chunker"
	"github.com/custodia-labs/hybrid-rag/internal/postprocessors/enricher"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("enricher", buildEnricher)
}

// BuildPipeline assembles the processors named in cfg, in order.
func BuildPipeline(r *Registry, cfg domain.PipelineConfig) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range cfg.Processors {
		proc, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		p.Add(proc)
	}
	logger.Debug("Post-processing pipeline: %s", strings.Join(p.Names(), " -> "))
	return p, nil
}

// NewDefaultPipeline builds the chunker and enricher pipeline for settings.
func NewDefaultPipeline(settings domain.AppSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return BuildPipeline(r, domain.PipelineConfigFor(settings))
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
//   - respect_sentences (bool): Split on sentence boundaries (default: true)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size, ok := getIntFromConfig(cfg, "chunk_size"); ok && size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := getIntFromConfig(cfg, "overlap"); ok {
		if overlap < 0 {
			return nil, fmt.Errorf("chunker overlap %d: %w", overlap, domain.ErrInvalidInput)
		}
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	if respect, ok := cfg["respect_sentences"].(bool); ok {
		opts = append(opts, chunker.WithRespectSentences(respect))
	}

	return chunker.New(opts...), nil
}

// buildEnricher creates an enricher processor from generic config.
// Supported config keys:
//   - max_keywords (int): Keywords kept per chunk (default: 10)
//   - summary_length (int): Maximum summary length (default: 150)
func buildEnricher(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []enricher.Option

	if n, ok := getIntFromConfig(cfg, "max_keywords"); ok {
		opts = append(opts, enricher.WithMaxKeywords(n))
	}
	if n, ok := getIntFromConfig(cfg, "summary_length"); ok {
		opts = append(opts, enricher.WithSummaryLength(n))
	}

	return enricher.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
// The second result is false when the key is missing or not numeric.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
