package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// indexedChunk is a chunk plus the per-chunk data keyword scoring needs.
type indexedChunk struct {
	chunk *domain.Chunk
	doc   *domain.Document
	lower string
	// normalized is the chunk's words as query tokens see them, so "Node.js"
	// reads "nodejs" on both sides of a substring count.
	normalized string
	words     map[string]struct{}
	wordCount int
}

// indexSnapshot is one immutable generation of the index.
// It is built completely before being published and never modified afterwards.
type indexSnapshot struct {
	documents  []*domain.Document
	byID       map[string]*domain.Document
	chunks     []indexedChunk
	vocabulary *textproc.Vocabulary
	builtAt    time.Time
}

func newIndexedChunk(c *domain.Chunk, doc *domain.Document) indexedChunk {
	words := textproc.Words(c.Content)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return indexedChunk{
		chunk:      c,
		doc:        doc,
		lower:      strings.ToLower(c.Content),
		normalized: strings.Join(words, " "),
		words:      set,
		wordCount:  textproc.WordCount(c.Content),
	}
}

func (s *indexSnapshot) stats() domain.IndexStats {
	if s == nil {
		return domain.IndexStats{}
	}
	return domain.IndexStats{
		TotalDocuments: len(s.documents),
		TotalChunks:    len(s.chunks),
		VocabularySize: s.vocabulary.Len(),
		IsIndexed:      true,
	}
}

// document returns the indexed document with id.
func (s *indexSnapshot) document(id string) (*domain.Document, bool) {
	doc, ok := s.byID[id]
	return doc, ok
}

// cloneDocument copies doc so the index never aliases caller memory.
func cloneDocument(doc domain.Document) *domain.Document {
	out := doc
	out.Metadata.TechStack = append([]string(nil), doc.Metadata.TechStack...)
	out.Chunks = nil
	return &out
}

// dedupeDocuments keeps one document per ID. A later duplicate replaces the
// earlier one in the earlier position.
func dedupeDocuments(docs []domain.Document) []domain.Document {
	seen := make(map[string]int, len(docs))
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if i, ok := seen[d.ID]; ok {
			out[i] = d
			continue
		}
		seen[d.ID] = len(out)
		out = append(out, d)
	}
	return out
}
