package words

// ExclusionSet is the normalized set of words suppressed from counting.
type ExclusionSet map[Word]struct{}

// NewExclusionSet builds a set from already-normalized words.
func NewExclusionSet(excluded []Word) ExclusionSet {
	set := make(ExclusionSet, len(excluded))
	for _, w := range excluded {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether w is excluded. A nil set contains nothing.
func (s ExclusionSet) Contains(w Word) bool {
	_, ok := s[w]
	return ok
}

// Len returns the number of distinct excluded words.
func (s ExclusionSet) Len() int {
	return len(s)
}
