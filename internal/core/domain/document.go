package domain

import "time"

// Document represents a unit of source content that can be indexed.
// It is immutable once indexed; re-indexing produces a new copy.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full raw text of the document.
	Content string

	// Metadata describes where the document came from and what it covers.
	Metadata DocumentMetadata

	// Chunks are the passages derived from Content.
	// Empty until the document has been indexed.
	Chunks []Chunk
}

// DocumentMetadata holds descriptive fields used for filtering and display.
type DocumentMetadata struct {
	// Title is the human-readable title.
	Title string

	// Category groups documents (e.g. "database", "frontend").
	Category string

	// Platform is an optional platform tag.
	Platform string

	// TechStack is an optional list of technology tags.
	TechStack []string

	// Source is the label of the system the document came from.
	Source string

	// LastUpdated is when the source content last changed.
	LastUpdated time.Time

	// WordCount is the number of whitespace-separated words in Content.
	WordCount int
}

// Chunk represents a bounded passage of a document.
// Chunks are the atomic unit scored during search.
type Chunk struct {
	// ID is derived deterministically from DocumentID and the chunk index.
	ID string

	// DocumentID links to the parent Document (lookup only).
	DocumentID string

	// Content is the trimmed passage text.
	Content string

	// Embedding is the term-frequency vector over the index vocabulary.
	// Nil until the embedding pass of indexing has run.
	Embedding []float64

	// StartIndex is the byte offset of the passage in the parent content.
	StartIndex int

	// EndIndex is the exclusive byte offset of the passage end.
	EndIndex int

	// Metadata holds chunk-level derived data.
	Metadata ChunkMetadata
}

// ChunkMetadata holds positional and derived information for a chunk.
type ChunkMetadata struct {
	// ChunkIndex is the ordinal position within the document.
	ChunkIndex int

	// OverlapPrevious is true when the chunk shares text with its predecessor.
	OverlapPrevious bool

	// OverlapNext is true when content continues after this chunk.
	OverlapNext bool

	// Keywords are the most frequent significant terms of the passage.
	Keywords []string

	// Summary is a short extract of the passage.
	Summary string
}

// HasEmbedding reports whether the chunk has been embedded.
func (c *Chunk) HasEmbedding() bool {
	return c.Embedding != nil
}
