package textproc

import "math"

// TermFrequencyEmbedding maps text onto vocab. Dimension i holds the count
// of vocabulary term i among the text's terms divided by the total number
// of terms. Terms outside the vocabulary add to the total only.
//
// The vector always has vocab.Len() dimensions; text without terms yields
// the zero vector.
func TermFrequencyEmbedding(text string, vocab *Vocabulary) []float64 {
	vec := make([]float64, vocab.Len())
	terms := Terms(text)
	if len(terms) == 0 || len(vec) == 0 {
		return vec
	}

	for _, term := range terms {
		if i, ok := vocab.Index(term); ok {
			vec[i]++
		}
	}

	total := float64(len(terms))
	for i := range vec {
		vec[i] /= total
	}
	return vec
}

// CosineSimilarity returns the cosine of the angle between a and b.
// It returns 0 when either vector has zero magnitude. Vectors of different
// length are compared over their common prefix.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
