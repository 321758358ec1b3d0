package models

import "github.com/dtnitsch/wordbucket/pkg/mapreduce"

// RunSummary is the structured output for a counting run.
type RunSummary struct {
	RunID        string `yaml:"run_id"`
	Status       string `yaml:"status"`
	InputDir     string `yaml:"input_dir"`
	OutputDir    string `yaml:"output_dir"`
	ExcludedFile string `yaml:"excluded_file"`
	Tokenizer    string `yaml:"tokenizer"`
	Alphabet     string `yaml:"alphabet"`
	Language     string `yaml:"language,omitempty"`

	Stats      RunStats                 `yaml:"stats"`
	Buckets    []BucketSummary          `yaml:"buckets"`
	Unbucketed []string                 `yaml:"unbucketed,omitempty"`
	TopWords   []mapreduce.KeywordCount `yaml:"top_words,omitempty"`
}

// RunStats provides counters for the run.
type RunStats struct {
	Files            int     `yaml:"files"`
	HTMLFiles        int     `yaml:"html_files,omitempty"`
	InputBytes       int64   `yaml:"input_bytes"`
	Tokens           int     `yaml:"tokens"`
	ExcludedTokens   int     `yaml:"excluded_tokens"`
	ExclusionList    int     `yaml:"exclusion_list"`
	DistinctWords    int     `yaml:"distinct_words"`
	ExcludedCount    int     `yaml:"excluded_count"`
	UnbucketedWords  int     `yaml:"unbucketed_words"`
	FilesWritten     int     `yaml:"files_written"`
	TotalTimeSeconds float64 `yaml:"total_time_seconds"`
}

// BucketSummary describes one non-empty letter bucket.
type BucketSummary struct {
	Letter      string `yaml:"letter"`
	Words       int    `yaml:"words"`
	Occurrences int    `yaml:"occurrences"`
}
