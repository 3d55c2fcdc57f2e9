package domain

import (
	"fmt"
	"slices"
	"time"
)

// Search defaults applied when a SearchConfig field is unset.
const (
	DefaultSemanticWeight = 0.7
	DefaultKeywordWeight  = 0.3
	DefaultMaxResults     = 10
	DefaultRerankResults  = true
)

// MatchType records which retrieval path produced a result.
type MatchType string

// Available match types.
const (
	// MatchTypeSemantic means only vector similarity matched.
	MatchTypeSemantic MatchType = "semantic"

	// MatchTypeKeyword means only lexical matching matched.
	MatchTypeKeyword MatchType = "keyword"

	// MatchTypeHybrid means both paths matched the same chunk.
	MatchTypeHybrid MatchType = "hybrid"
)

// String returns the string representation.
func (m MatchType) String() string {
	return string(m)
}

// SearchQuery is a single request against the index.
type SearchQuery struct {
	// Query is the natural-language query text.
	Query string

	// Context is optional caller context. It is carried through but not scored.
	Context string

	// Filters restrict results. Nil means no filtering.
	Filters *SearchFilters

	// Config overrides search defaults. Nil means all defaults.
	Config *SearchConfig
}

// SearchOptions are the per-call options accepted by the retrieval facade.
type SearchOptions struct {
	// Context is optional caller context.
	Context string

	// Filters restrict results.
	Filters *SearchFilters

	// Config overrides search defaults.
	Config *SearchConfig
}

// SearchFilters restricts results. All active filters must match (AND).
type SearchFilters struct {
	// Platforms keeps documents whose platform is one of these values.
	Platforms []string

	// Categories keeps documents whose category is one of these values.
	Categories []string

	// TechStack keeps documents sharing at least one tag with this list.
	TechStack []string

	// DateRange keeps documents last updated inside the range.
	DateRange *DateRange
}

// DateRange is an inclusive time interval. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// dateLayout is the day-precision form accepted by ParseDateRange.
const dateLayout = "2006-01-02"

// ParseDateRange builds a range from user-supplied bounds. Each bound is
// either a day (2006-01-02) or an RFC 3339 timestamp; an empty bound is
// open. A day given as the upper bound covers that whole day. Returns nil
// when both bounds are empty.
func ParseDateRange(since, until string) (*DateRange, error) {
	if since == "" && until == "" {
		return nil, nil
	}

	var r DateRange
	if since != "" {
		t, _, err := parseDate(since)
		if err != nil {
			return nil, err
		}
		r.Start = t
	}
	if until != "" {
		t, dayOnly, err := parseDate(until)
		if err != nil {
			return nil, err
		}
		if dayOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return nil, fmt.Errorf("%w: date range ends before it starts", ErrInvalidInput)
	}
	return &r, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: date %q is neither YYYY-MM-DD nor RFC 3339", ErrInvalidInput, s)
	}
	return t, false, nil
}

// IsEmpty returns true if no filter is active.
func (f *SearchFilters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Platforms) == 0 &&
		len(f.Categories) == 0 &&
		len(f.TechStack) == 0 &&
		f.DateRange == nil
}

// Matches reports whether a document's metadata satisfies every active filter.
func (f *SearchFilters) Matches(meta DocumentMetadata) bool {
	if f.IsEmpty() {
		return true
	}
	if len(f.Platforms) > 0 && !slices.Contains(f.Platforms, meta.Platform) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, meta.Category) {
		return false
	}
	if len(f.TechStack) > 0 {
		overlap := false
		for _, tech := range meta.TechStack {
			if slices.Contains(f.TechStack, tech) {
				overlap = true
				break
			}
		}
		if !overlap {
			return false
		}
	}
	if f.DateRange != nil && !f.DateRange.Contains(meta.LastUpdated) {
		return false
	}
	return true
}

// SearchConfig holds optional per-query tuning. Nil fields take defaults.
// Weights are not normalised and need not sum to 1.
type SearchConfig struct {
	SemanticWeight *float64
	KeywordWeight  *float64
	MaxResults     *int
	RerankResults  *bool
}

// EffectiveSearchConfig is a SearchConfig with every field resolved.
type EffectiveSearchConfig struct {
	SemanticWeight float64
	KeywordWeight  float64
	MaxResults     int
	RerankResults  bool
}

// DefaultSearchConfig returns the built-in search defaults.
func DefaultSearchConfig() EffectiveSearchConfig {
	return EffectiveSearchConfig{
		SemanticWeight: DefaultSemanticWeight,
		KeywordWeight:  DefaultKeywordWeight,
		MaxResults:     DefaultMaxResults,
		RerankResults:  DefaultRerankResults,
	}
}

// Resolve fills unset fields from base. A non-positive MaxResults falls back to base.
func (c *SearchConfig) Resolve(base EffectiveSearchConfig) EffectiveSearchConfig {
	out := base
	if c == nil {
		return out
	}
	if c.SemanticWeight != nil {
		out.SemanticWeight = *c.SemanticWeight
	}
	if c.KeywordWeight != nil {
		out.KeywordWeight = *c.KeywordWeight
	}
	if c.MaxResults != nil && *c.MaxResults > 0 {
		out.MaxResults = *c.MaxResults
	}
	if c.RerankResults != nil {
		out.RerankResults = *c.RerankResults
	}
	return out
}

// Merge returns a copy of c with unset fields taken from fallback.
// Either side may be nil.
func (c *SearchConfig) Merge(fallback *SearchConfig) *SearchConfig {
	if c == nil && fallback == nil {
		return nil
	}
	out := &SearchConfig{}
	if fallback != nil {
		*out = *fallback
	}
	if c == nil {
		return out
	}
	if c.SemanticWeight != nil {
		out.SemanticWeight = c.SemanticWeight
	}
	if c.KeywordWeight != nil {
		out.KeywordWeight = c.KeywordWeight
	}
	if c.MaxResults != nil {
		out.MaxResults = c.MaxResults
	}
	if c.RerankResults != nil {
		out.RerankResults = c.RerankResults
	}
	return out
}

// ResultMetadata carries provenance for a search result.
type ResultMetadata struct {
	DocumentID string    `json:"document_id"`
	ChunkID    string    `json:"chunk_id"`
	Platform   string    `json:"platform,omitempty"`
	Category   string    `json:"category,omitempty"`
	MatchType  MatchType `json:"match_type"`
}

// SearchResult represents a single ranked chunk.
type SearchResult struct {
	// ID is the chunk ID.
	ID string `json:"id"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Score is the final score after fusion and re-ranking.
	Score float64 `json:"score"`

	// RelevanceScore is the fused score before re-ranking.
	RelevanceScore float64 `json:"relevance_score"`

	// Source is the source label of the parent document.
	Source string `json:"source,omitempty"`

	// Metadata identifies the chunk and how it matched.
	Metadata ResultMetadata `json:"metadata"`
}

// SearchStats describes a single search execution.
type SearchStats struct {
	TotalDocuments       int           `json:"total_documents"`
	SearchTime           time.Duration `json:"search_time"`
	SemanticResultsCount int           `json:"semantic_results_count"`
	KeywordResultsCount  int           `json:"keyword_results_count"`
	RerankingApplied     bool          `json:"reranking_applied"`
}

// SearchResponse is the full answer to a SearchQuery.
// An empty Results list is a valid outcome, not an error.
type SearchResponse struct {
	Query       string         `json:"query"`
	Results     []SearchResult `json:"results"`
	SearchStats SearchStats    `json:"search_stats"`
	Suggestions []string       `json:"suggestions"`
}

// IndexStats summarises the current index.
type IndexStats struct {
	TotalDocuments int  `json:"total_documents"`
	TotalChunks    int  `json:"total_chunks"`
	VocabularySize int  `json:"vocabulary_size"`
	IsIndexed      bool `json:"is_indexed"`
}

// Float64 returns a pointer to v. Useful for building SearchConfig values.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
