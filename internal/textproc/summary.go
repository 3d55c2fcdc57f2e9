package textproc

import (
	"strings"
	"unicode/utf8"
)

// DefaultSummaryLength is used when GenerateSummary is given a non-positive length.
const DefaultSummaryLength = 150

// firstSentenceCoverage is the share of maxLength the first sentence must
// fill to be used on its own.
const firstSentenceCoverage = 0.7

// GenerateSummary builds a summary of text no longer than maxLength bytes.
//
// The first sentence is returned alone when it fills at least 70% of
// maxLength. Otherwise sentences are joined with ". " while they fit.
// If not even one sentence fits, the text is cut at maxLength.
func GenerateSummary(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return truncate(strings.TrimSpace(text), maxLength)
	}

	first := sentences[0]
	if len(first) <= maxLength && float64(len(first)) >= firstSentenceCoverage*float64(maxLength) {
		return first
	}

	var summary string
	for _, s := range sentences {
		candidate := s
		if summary != "" {
			candidate = summary + ". " + s
		}
		if len(candidate) > maxLength {
			break
		}
		summary = candidate
	}
	if summary != "" {
		return summary
	}

	return truncate(first, maxLength)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n])
}
