package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

const (
	// minSemanticScore is the cosine similarity a chunk must exceed.
	minSemanticScore = 0.1

	// minKeywordScore is the keyword score a chunk must exceed.
	minKeywordScore = 0.05

	exactTokenBonus    = 0.5
	phraseBonus        = 2.0
	minPhraseLength    = 5
	lengthBoost        = 1.1
	prefixBoost        = 1.2
	containsBoost      = 1.1
	minRerankSentences = 2
	maxRerankSentences = 6
)

// scoredChunk holds intermediate search results before conversion.
type scoredChunk struct {
	entry     *indexedChunk
	score     float64
	relevance float64
	matchType domain.MatchType
}

// sortByScore orders results by descending score, keeping index order on ties.
func sortByScore(results []scoredChunk) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
}

// semanticSearch scores every embedded chunk by cosine similarity to queryVec.
func (s *indexSnapshot) semanticSearch(queryVec []float64, filters *domain.SearchFilters) []scoredChunk {
	var out []scoredChunk
	for i := range s.chunks {
		entry := &s.chunks[i]
		if !entry.chunk.HasEmbedding() || !filters.Matches(entry.doc.Metadata) {
			continue
		}
		score := textproc.CosineSimilarity(queryVec, entry.chunk.Embedding)
		if score > minSemanticScore {
			out = append(out, scoredChunk{entry: entry, score: score, matchType: domain.MatchTypeSemantic})
		}
	}
	sortByScore(out)
	return out
}

// keywordSearch scores chunks by query token occurrences.
//
// matchCount sums the substring occurrences of every query token. Each token
// that is also a whole word of the chunk adds exactTokenBonus, and a query
// longer than minPhraseLength found verbatim adds phraseBonus. The score is
// matchCount/chunkWords + bonus/queryTokens.
func (s *indexSnapshot) keywordSearch(query string, filters *domain.SearchFilters) []scoredChunk {
	tokens := textproc.QueryTokens(query)
	if len(tokens) == 0 {
		return nil
	}
	lowerQuery := strings.ToLower(query)
	checkPhrase := len(query) > minPhraseLength

	var out []scoredChunk
	for i := range s.chunks {
		entry := &s.chunks[i]
		if entry.wordCount == 0 || !filters.Matches(entry.doc.Metadata) {
			continue
		}

		matches := 0
		bonus := 0.0
		for _, tok := range tokens {
			matches += strings.Count(entry.normalized, tok)
			if _, ok := entry.words[tok]; ok {
				bonus += exactTokenBonus
			}
		}
		if checkPhrase && strings.Contains(entry.lower, lowerQuery) {
			bonus += phraseBonus
		}

		score := float64(matches)/float64(entry.wordCount) + bonus/float64(len(tokens))
		if score > minKeywordScore {
			out = append(out, scoredChunk{entry: entry, score: score, matchType: domain.MatchTypeKeyword})
		}
	}
	sortByScore(out)
	return out
}

// fuse merges both result lists by chunk. Scores are scaled by their weight;
// a chunk in both lists gets the weighted sum and becomes a hybrid match.
// Chunks whose fused score is not positive are dropped.
func fuse(semantic, keyword []scoredChunk, cfg domain.EffectiveSearchConfig) []scoredChunk {
	merged := make([]scoredChunk, 0, len(semantic)+len(keyword))
	pos := make(map[string]int, len(semantic)+len(keyword))

	for _, r := range semantic {
		r.score *= cfg.SemanticWeight
		pos[r.entry.chunk.ID] = len(merged)
		merged = append(merged, r)
	}
	for _, r := range keyword {
		weighted := r.score * cfg.KeywordWeight
		if i, ok := pos[r.entry.chunk.ID]; ok {
			merged[i].score += weighted
			merged[i].matchType = domain.MatchTypeHybrid
			continue
		}
		r.score = weighted
		merged = append(merged, r)
	}

	out := merged[:0]
	for _, r := range merged {
		if r.score > 0 {
			r.relevance = r.score
			out = append(out, r)
		}
	}
	sortByScore(out)
	return out
}

// rerank boosts passages of moderate length and passages that start with or
// contain the query, then re-sorts.
func rerank(results []scoredChunk, query string) {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	for i := range results {
		r := &results[i]
		if n := textproc.CountSentences(r.entry.chunk.Content); n >= minRerankSentences && n <= maxRerankSentences {
			r.score *= lengthBoost
		}
		switch {
		case strings.HasPrefix(r.entry.lower, lowerQuery):
			r.score *= prefixBoost
		case strings.Contains(r.entry.lower, lowerQuery):
			r.score *= containsBoost
		}
	}
	sortByScore(results)
}

// filterAndLimit drops results whose document fails filters and keeps at most limit.
func filterAndLimit(results []scoredChunk, filters *domain.SearchFilters, limit int) []scoredChunk {
	out := results[:0]
	for _, r := range results {
		if len(out) == limit {
			break
		}
		if filters.Matches(r.entry.doc.Metadata) {
			out = append(out, r)
		}
	}
	return out
}

func (r scoredChunk) toResult() domain.SearchResult {
	return domain.SearchResult{
		ID:             r.entry.chunk.ID,
		Content:        r.entry.chunk.Content,
		Score:          r.score,
		RelevanceScore: r.relevance,
		Source:         r.entry.doc.Metadata.Source,
		Metadata: domain.ResultMetadata{
			DocumentID: r.entry.doc.ID,
			ChunkID:    r.entry.chunk.ID,
			Platform:   r.entry.doc.Metadata.Platform,
			Category:   r.entry.doc.Metadata.Category,
			MatchType:  r.matchType,
		},
	}
}
