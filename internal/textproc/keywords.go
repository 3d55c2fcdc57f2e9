package textproc

import "sort"

// DefaultMaxKeywords is used when ExtractKeywords is given a non-positive limit.
const DefaultMaxKeywords = 10

// ExtractKeywords returns up to max distinct terms of text, most frequent
// first. Ties keep the order in which the terms first appear.
func ExtractKeywords(text string, max int) []string {
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	freq := make(map[string]int)
	var order []string
	for _, term := range Terms(text) {
		if freq[term] == 0 {
			order = append(order, term)
		}
		freq[term]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}
