// Package mapreduce counts word occurrences. Map builds a frequency table for
// one collection of words, Reduce merges tables from several collections.
package mapreduce

import "github.com/dtnitsch/wordbucket/pkg/words"

// FrequencyTable maps each counted Word to its number of occurrences.
// Every present key has a count of at least 1.
type FrequencyTable map[words.Word]int

// Map counts every word not in excluded. Exclusion is by membership: a word
// that is excluded loses all of its occurrences.
func Map(ws []words.Word, excluded words.ExclusionSet) FrequencyTable {
	counts := make(FrequencyTable)
	for _, w := range ws {
		if excluded.Contains(w) {
			continue
		}
		counts[w]++
	}
	return counts
}

// Reduce aggregates several frequency tables into a single one.
func Reduce(intermediate []FrequencyTable) FrequencyTable {
	finalResults := make(FrequencyTable)

	for _, counts := range intermediate {
		for word, count := range counts {
			if count <= 0 {
				continue
			}
			finalResults[word] += count
		}
	}

	return finalResults
}

// WordCountByWord counts ws after removing every word present in excluded.
func WordCountByWord(ws, excluded []words.Word) FrequencyTable {
	return Map(ws, words.NewExclusionSet(excluded))
}

// Total returns the sum of all counts in t.
func (t FrequencyTable) Total() int {
	total := 0
	for _, c := range t {
		total += c
	}
	return total
}
