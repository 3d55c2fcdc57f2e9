package textproc

import (
	"strings"
	"unicode"
)

// Span is a half-open byte range [Start, End) into a text.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SentenceSpans returns the byte ranges of the sentences in text.
// A sentence runs up to and including its run of terminators (. ! ?).
// Leading whitespace is excluded from each span; trailing text with no
// terminator forms a final span. Whitespace-only text yields no spans.
func SentenceSpans(text string) []Span {
	var spans []Span
	start := -1
	inTerminators := false

	for i, r := range text {
		if start < 0 {
			if unicode.IsSpace(r) {
				continue
			}
			start = i
		}
		switch {
		case isTerminator(r):
			inTerminators = true
		case inTerminators:
			spans = append(spans, Span{Start: start, End: i})
			inTerminators = false
			start = -1
			if !unicode.IsSpace(r) {
				start = i
			}
		}
	}

	if start >= 0 {
		end := len(strings.TrimRightFunc(text, unicode.IsSpace))
		if end > start {
			spans = append(spans, Span{Start: start, End: end})
		}
	}
	return spans
}

// SplitSentences splits text on runs of . ! ? and returns the trimmed,
// non-empty pieces without their terminators.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, isTerminator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CountSentences returns the number of sentences SplitSentences finds.
func CountSentences(text string) int {
	return len(SplitSentences(text))
}
