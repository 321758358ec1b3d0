// Package buckets groups word counts by first letter and renders each group
// as a plain-text blob.
package buckets

import (
	"sort"
	"strconv"

	"github.com/dtnitsch/wordbucket/pkg/mapreduce"
	"github.com/dtnitsch/wordbucket/pkg/words"
)

// WordByCount is one frequency-table entry.
type WordByCount struct {
	Word  words.Word
	Count int
}

// Key returns the bucket key: the first letter of the word.
func (wc WordByCount) Key() string {
	return wc.Word.FirstLetter()
}

// String renders the entry as "<WORD> <COUNT>".
func (wc WordByCount) String() string {
	return wc.Word.String() + " " + strconv.Itoa(wc.Count)
}

// Map holds the populated buckets keyed by letter. A missing key is an empty
// bucket.
type Map map[string][]WordByCount

// Group buckets every entry of table by its first letter. Entries inside a
// bucket are sorted by canonical word.
func Group(table mapreduce.FrequencyTable) Map {
	out := make(Map)
	for w, c := range table {
		wc := WordByCount{Word: w, Count: c}
		out[wc.Key()] = append(out[wc.Key()], wc)
	}
	for _, bucket := range out {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].Word.String() < bucket[j].Word.String()
		})
	}
	return out
}

// Keys returns the populated bucket keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
