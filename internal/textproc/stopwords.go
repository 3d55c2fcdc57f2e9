package textproc

// Words of three characters or fewer never reach the stop-word check,
// so only longer function words are listed.
var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "also": {},
	"been": {}, "before": {}, "being": {}, "below": {}, "between": {}, "both": {},
	"could": {}, "does": {}, "doing": {}, "down": {}, "during": {}, "each": {},
	"from": {}, "further": {}, "have": {}, "having": {}, "here": {}, "into": {},
	"just": {}, "more": {}, "most": {}, "only": {}, "other": {}, "over": {},
	"same": {}, "should": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "under": {}, "until": {}, "very": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"will": {}, "with": {}, "would": {}, "your": {}, "yours": {}, "because": {},
	"itself": {}, "ourselves": {}, "themselves": {}, "whom": {}, "whose": {},
}

// IsStopWord reports whether word is a stop word. The word must already be normalised.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
