package textproc

// Vocabulary is an insertion-ordered set of terms. The position of a term
// is its dimension in every embedding built against the vocabulary.
//
// A Vocabulary is not safe for concurrent mutation. Once building is done
// it may be read from any number of goroutines.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Add inserts term if it is new and reports whether it was added.
func (v *Vocabulary) Add(term string) bool {
	if _, ok := v.index[term]; ok {
		return false
	}
	v.index[term] = len(v.terms)
	v.terms = append(v.terms, term)
	return true
}

// AddText adds every term of text and returns how many were new.
func (v *Vocabulary) AddText(text string) int {
	added := 0
	for _, term := range Terms(text) {
		if v.Add(term) {
			added++
		}
	}
	return added
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Index returns the dimension of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the terms in insertion order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Each calls fn for every term in insertion order until fn returns false.
func (v *Vocabulary) Each(fn func(term string) bool) {
	if v == nil {
		return
	}
	for _, t := range v.terms {
		if !fn(t) {
			return
		}
	}
}
