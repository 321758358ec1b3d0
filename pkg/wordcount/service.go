// Package wordcount wires the counting pipeline together: normalize both word
// collections, drop excluded words, count, bucket by first letter and render
// one blob per letter of an alphabet.
package wordcount

import (
	"strconv"

	"github.com/dtnitsch/wordbucket/pkg/buckets"
	"github.com/dtnitsch/wordbucket/pkg/mapreduce"
	"github.com/dtnitsch/wordbucket/pkg/words"
)

// DefaultAlphabet lists the Danish alphabet; every letter becomes one output file.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZÆØÅ"

// DefaultExcludedCountKey is the output map key holding the distinct-excluded count.
const DefaultExcludedCountKey = "excluded_count"

// Service runs the pipeline. It holds configuration only; every call builds
// its results from scratch.
type Service struct {
	Alphabet string
	Render   buckets.RenderOptions
	// ExcludedCountKey names the entry CreateWordcountFiles adds for the
	// distinct-excluded count. Empty disables the entry.
	ExcludedCountKey string
}

// NewService returns a Service with the default alphabet and rendering.
func NewService() *Service {
	return &Service{
		Alphabet:         DefaultAlphabet,
		Render:           buckets.DefaultRenderOptions,
		ExcludedCountKey: DefaultExcludedCountKey,
	}
}

// Result carries the intermediate products of one run.
type Result struct {
	Words     []words.Word
	Excluded  []words.Word
	Table     mapreduce.FrequencyTable
	Buckets   buckets.Map
	OutputMap map[string]string
}

// Run executes the pipeline and keeps every intermediate product.
func (s *Service) Run(strs, excludedStrs []string) *Result {
	excluded := words.Load(excludedStrs)
	ws := words.Load(strs)

	table := mapreduce.WordCountByWord(ws, excluded)
	grouped := buckets.Group(table)

	return &Result{
		Words:     ws,
		Excluded:  excluded,
		Table:     table,
		Buckets:   grouped,
		OutputMap: buckets.Render(s.Alphabet, grouped, s.Render),
	}
}

// CreateOutputMap returns one rendered blob per letter of the alphabet.
func (s *Service) CreateOutputMap(strs, excludedStrs []string) map[string]string {
	return s.Run(strs, excludedStrs).OutputMap
}

// CountExcluded returns the number of distinct input words found in the
// exclusion list.
func (s *Service) CountExcluded(strs, excludedStrs []string) int {
	return mapreduce.CountExcluded(strs, excludedStrs)
}

// CreateWordcountFiles returns the output map merged with the
// distinct-excluded count under ExcludedCountKey.
func (s *Service) CreateWordcountFiles(strs, excludedStrs []string) map[string]string {
	out := s.CreateOutputMap(strs, excludedStrs)
	s.MergeExcludedCount(out, s.CountExcluded(strs, excludedStrs))
	return out
}

// MergeExcludedCount stores count in out under ExcludedCountKey.
func (s *Service) MergeExcludedCount(out map[string]string, count int) {
	if s.ExcludedCountKey == "" {
		return
	}
	out[s.ExcludedCountKey] = strconv.Itoa(count)
}
