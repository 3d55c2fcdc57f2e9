// Package chunker splits document content into overlapping chunks,
// either along sentence boundaries or over a fixed character window.
package chunker

import (
	"context"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// chunkNamespace scopes chunk IDs so the same document ID and index always
// produce the same UUID.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hybrid-rag:chunk"))

// ChunkID returns the deterministic ID of chunk index of document docID.
func ChunkID(docID string, index int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(docID+"#"+strconv.Itoa(index))).String()
}

// Options controls how content is split.
type Options struct {
	ChunkSize        int
	Overlap          int
	RespectSentences bool
}

// DefaultOptions returns sentence-aware chunking with the default sizes.
func DefaultOptions() Options {
	return Options{
		ChunkSize:        DefaultChunkSize,
		Overlap:          DefaultChunkOverlap,
		RespectSentences: true,
	}
}

// normalised fills in defaults and keeps the overlap below the chunk size.
func (o Options) normalised() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Overlap < 0 {
		o.Overlap = 0
	}
	if o.Overlap >= o.ChunkSize {
		o.Overlap = o.ChunkSize / 4
	}
	return o
}

// Processor splits document content into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	opts Options
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.opts.ChunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.opts.Overlap = overlap
		}
	}
}

// WithRespectSentences toggles sentence-aware splitting.
func WithRespectSentences(respect bool) Option {
	return func(p *Processor) {
		p.opts.RespectSentences = respect
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{opts: DefaultOptions()}
	for _, opt := range opts {
		opt(p)
	}
	p.opts = p.opts.normalised()
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Options returns the effective options.
func (p *Processor) Options() Options {
	return p.opts
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ChunkDocument(doc, p.opts), nil
}

// ChunkDocument splits doc.Content according to opts.
//
// Every chunk's Content equals doc.Content[StartIndex:EndIndex]. Chunks are
// ordered, never empty, and together cover every non-whitespace character.
// A single sentence longer than ChunkSize becomes one oversized chunk.
// Empty or whitespace-only content yields no chunks.
func ChunkDocument(doc *domain.Document, opts Options) []domain.Chunk {
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return nil
	}
	opts = opts.normalised()

	var spans []textproc.Span
	if opts.RespectSentences {
		spans = sentenceChunks(doc.Content, opts)
	} else {
		spans = windowChunks(doc.Content, opts)
	}

	contentEnd := len(strings.TrimRightFunc(doc.Content, unicode.IsSpace))
	chunks := make([]domain.Chunk, 0, len(spans))
	for i, s := range spans {
		chunks = append(chunks, domain.Chunk{
			ID:         ChunkID(doc.ID, i),
			DocumentID: doc.ID,
			Content:    doc.Content[s.Start:s.End],
			StartIndex: s.Start,
			EndIndex:   s.End,
			Metadata: domain.ChunkMetadata{
				ChunkIndex:      i,
				OverlapPrevious: i > 0,
				OverlapNext:     s.End < contentEnd,
			},
		})
	}
	return chunks
}

// sentenceChunks packs whole sentences into chunks of at most ChunkSize.
// When a sentence does not fit, the current chunk is closed and the next
// one starts with the trailing Overlap characters of the closed chunk.
func sentenceChunks(content string, opts Options) []textproc.Span {
	var out []textproc.Span
	cur := textproc.Span{Start: -1}

	for _, s := range textproc.SentenceSpans(content) {
		switch {
		case cur.Start < 0:
			cur = s
		case s.End-cur.Start <= opts.ChunkSize:
			cur.End = s.End
		default:
			out = append(out, cur)
			start := cur.End - opts.Overlap
			if start < cur.Start {
				start = cur.Start
			}
			start = skipSpace(content, ceilRune(content, start), s.Start)
			cur = textproc.Span{Start: start, End: s.End}
		}
	}

	if cur.Start >= 0 {
		out = append(out, cur)
	}
	return out
}

// windowChunks slides a ChunkSize window forward by ChunkSize-Overlap,
// trimming whitespace from each window.
func windowChunks(content string, opts Options) []textproc.Span {
	var out []textproc.Span
	stride := opts.ChunkSize - opts.Overlap

	for start := 0; start < len(content); {
		end := start + opts.ChunkSize
		if end >= len(content) {
			end = len(content)
		} else if end = floorRune(content, end); end <= start {
			_, size := utf8.DecodeRuneInString(content[start:])
			end = start + size
		}

		if s, ok := trimSpan(content, start, end); ok {
			out = append(out, s)
		}
		if end == len(content) {
			break
		}

		next := floorRune(content, start+stride)
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

func trimSpan(content string, start, end int) (textproc.Span, bool) {
	piece := content[start:end]
	lead := len(piece) - len(strings.TrimLeftFunc(piece, unicode.IsSpace))
	trimmed := strings.TrimSpace(piece)
	if trimmed == "" {
		return textproc.Span{}, false
	}
	return textproc.Span{Start: start + lead, End: start + lead + len(trimmed)}, true
}

// skipSpace advances i past whitespace, stopping at limit.
func skipSpace(content string, i, limit int) int {
	for i < limit {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// floorRune moves i back to the start of the rune containing it.
func floorRune(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// ceilRune moves i forward to the next rune start.
func ceilRune(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
