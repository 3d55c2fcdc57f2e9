// Package textproc provides the pure text functions used while indexing and
// searching: tokenisation, sentence splitting, keyword extraction,
// summarisation and term-frequency embeddings over a shared vocabulary.
//
// Every function here is deterministic and free of I/O. Callers may use
// them concurrently.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTermLength is the length a token must exceed to count as a term.
const MinTermLength = 3

// MinQueryTokenLength is the length a query token must exceed for keyword matching.
const MinQueryTokenLength = 2

// Normalize lower-cases text and strips punctuation.
// Letters, digits, underscores and whitespace survive; everything else is dropped.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Words returns every normalised whitespace-separated word of text.
func Words(text string) []string {
	return strings.Fields(Normalize(text))
}

// Terms returns the significant tokens of text: normalised words longer than
// MinTermLength characters that are not stop words. Order and duplicates are kept.
func Terms(text string) []string {
	words := Words(text)
	out := words[:0]
	for _, w := range words {
		if IsTerm(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsTerm reports whether an already normalised word qualifies as a term.
func IsTerm(word string) bool {
	return utf8.RuneCountInString(word) > MinTermLength && !IsStopWord(word)
}

// QueryTokens returns the normalised query words longer than MinQueryTokenLength.
func QueryTokens(query string) []string {
	words := Words(query)
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) > MinQueryTokenLength {
			out = append(out, w)
		}
	}
	return out
}

// WordCount counts whitespace-separated words without normalising.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
