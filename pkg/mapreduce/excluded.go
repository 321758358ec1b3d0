package mapreduce

import "github.com/dtnitsch/wordbucket/pkg/words"

// CountExcluded returns how many distinct input words also occur in the
// exclusion list. Comparison happens on normalized Words. It is a diagnostic
// and does not affect Map. An empty exclusion list short-circuits to 0
// without normalizing the input.
func CountExcluded(raw, rawExcluded []string) int {
	if len(rawExcluded) == 0 {
		return 0
	}

	excluded := words.NewExclusionSet(words.Load(rawExcluded))
	if excluded.Len() == 0 {
		return 0
	}

	seen := make(map[words.Word]struct{})
	for _, w := range words.Load(raw) {
		if excluded.Contains(w) {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}
