package mapreduce

import (
	"fmt"
	"sort"
)

// KeywordCount pairs a canonical word with its count.
type KeywordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// TopN returns the n most frequent words, highest count first. Ties are
// broken by word so the result is stable.
func TopN(table FrequencyTable, n int) []KeywordCount {
	if n <= 0 {
		return nil
	}

	ss := make([]KeywordCount, 0, len(table))
	for k, v := range table {
		ss = append(ss, KeywordCount{Word: k.String(), Count: v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopKeywords returns the top N keywords formatted as "word:count"
// (e.g., "OST:6").
func TopKeywords(table FrequencyTable, n int) []string {
	top := TopN(table, n)
	keywords := make([]string, len(top))
	for i, kc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", kc.Word, kc.Count)
	}
	return keywords
}
