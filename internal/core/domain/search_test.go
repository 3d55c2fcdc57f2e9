package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilters_IsEmpty(t *testing.T) {
	var nilFilters *SearchFilters
	assert.True(t, nilFilters.IsEmpty())
	assert.True(t, (&SearchFilters{}).IsEmpty())
	assert.False(t, (&SearchFilters{Platforms: []string{"web"}}).IsEmpty())
	assert.False(t, (&SearchFilters{DateRange: &DateRange{}}).IsEmpty())
}

func TestSearchFilters_Matches(t *testing.T) {
	updated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	meta := DocumentMetadata{
		Platform:    "web",
		Category:    "database",
		TechStack:   []string{"go", "postgres"},
		LastUpdated: updated,
	}

	tests := []struct {
		name     string
		filters  *SearchFilters
		expected bool
	}{
		{"nil filters match everything", nil, true},
		{"matching platform", &SearchFilters{Platforms: []string{"web", "ios"}}, true},
		{"wrong platform", &SearchFilters{Platforms: []string{"ios"}}, false},
		{"matching category", &SearchFilters{Categories: []string{"database"}}, true},
		{"wrong category", &SearchFilters{Categories: []string{"frontend"}}, false},
		{"tech stack overlap", &SearchFilters{TechStack: []string{"rust", "go"}}, true},
		{"no tech stack overlap", &SearchFilters{TechStack: []string{"rust"}}, false},
		{
			name:     "inside date range",
			filters:  &SearchFilters{DateRange: &DateRange{Start: updated.AddDate(0, -1, 0), End: updated.AddDate(0, 1, 0)}},
			expected: true,
		},
		{
			name:     "before date range",
			filters:  &SearchFilters{DateRange: &DateRange{Start: updated.AddDate(0, 0, 1)}},
			expected: false,
		},
		{
			name:     "open ended range",
			filters:  &SearchFilters{DateRange: &DateRange{End: updated}},
			expected: true,
		},
		{
			name: "one failing filter rejects",
			filters: &SearchFilters{
				Platforms:  []string{"web"},
				Categories: []string{"database"},
				TechStack:  []string{"java"},
			},
			expected: false,
		},
		{
			name: "all filters pass",
			filters: &SearchFilters{
				Platforms:  []string{"web"},
				Categories: []string{"database"},
				TechStack:  []string{"postgres"},
				DateRange:  &DateRange{Start: updated},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.Matches(meta))
		})
	}
}

func TestSearchConfig_Resolve(t *testing.T) {
	base := DefaultSearchConfig()

	t.Run("nil config returns base", func(t *testing.T) {
		var cfg *SearchConfig
		assert.Equal(t, base, cfg.Resolve(base))
	})

	t.Run("set fields override", func(t *testing.T) {
		cfg := &SearchConfig{
			SemanticWeight: Float64(0),
			KeywordWeight:  Float64(1),
			MaxResults:     Int(5),
			RerankResults:  Bool(false),
		}
		got := cfg.Resolve(base)
		assert.Equal(t, 0.0, got.SemanticWeight)
		assert.Equal(t, 1.0, got.KeywordWeight)
		assert.Equal(t, 5, got.MaxResults)
		assert.False(t, got.RerankResults)
	})

	t.Run("non-positive max results falls back", func(t *testing.T) {
		cfg := &SearchConfig{MaxResults: Int(0)}
		assert.Equal(t, DefaultMaxResults, cfg.Resolve(base).MaxResults)
	})

	t.Run("weights are not normalised", func(t *testing.T) {
		cfg := &SearchConfig{SemanticWeight: Float64(2), KeywordWeight: Float64(3)}
		got := cfg.Resolve(base)
		assert.Equal(t, 2.0, got.SemanticWeight)
		assert.Equal(t, 3.0, got.KeywordWeight)
	})
}

func TestSearchConfig_Merge(t *testing.T) {
	t.Run("both nil", func(t *testing.T) {
		var cfg *SearchConfig
		assert.Nil(t, cfg.Merge(nil))
	})

	t.Run("call values win over fallback", func(t *testing.T) {
		call := &SearchConfig{MaxResults: Int(3)}
		fallback := &SearchConfig{MaxResults: Int(20), RerankResults: Bool(false)}
		got := call.Merge(fallback)
		assert.Equal(t, 3, *got.MaxResults)
		assert.False(t, *got.RerankResults)
		assert.Nil(t, got.SemanticWeight)
	})

	t.Run("fallback is not mutated", func(t *testing.T) {
		fallback := &SearchConfig{MaxResults: Int(20)}
		(&SearchConfig{MaxResults: Int(1)}).Merge(fallback)
		assert.Equal(t, 20, *fallback.MaxResults)
	})
}

func TestMatchType_String(t *testing.T) {
	assert.Equal(t, "semantic", MatchTypeSemantic.String())
	assert.Equal(t, "keyword", MatchTypeKeyword.String())
	assert.Equal(t, "hybrid", MatchTypeHybrid.String())
}

func TestParseDateRange(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	t.Run("both empty", func(t *testing.T) {
		r, err := ParseDateRange("", "")
		assert.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("day bounds cover the whole until day", func(t *testing.T) {
		r, err := ParseDateRange("2024-01-01", "2024-01-31")
		assert.NoError(t, err)
		assert.Equal(t, day(2024, 1, 1), r.Start)
		assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
		assert.False(t, r.Contains(day(2024, 2, 1)))
	})

	t.Run("open start", func(t *testing.T) {
		r, err := ParseDateRange("", "2024-06-01T12:00:00Z")
		assert.NoError(t, err)
		assert.True(t, r.Start.IsZero())
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), r.End)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseDateRange("last week", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reversed", func(t *testing.T) {
		_, err := ParseDateRange("2024-02-01", "2024-01-01")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
