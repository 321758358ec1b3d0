package count

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/wordbucket/models"
	"github.com/dtnitsch/wordbucket/pkg/buckets"
	"github.com/dtnitsch/wordbucket/pkg/db"
	"github.com/dtnitsch/wordbucket/pkg/mapreduce"
	"github.com/dtnitsch/wordbucket/pkg/storage"
	"github.com/dtnitsch/wordbucket/pkg/wordcount"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// BuildSummary collects the counters of a finished pipeline run.
func BuildSummary(cfg *models.Config, result *wordcount.Result, readStats *storage.ReadStats, excludedCount int) *models.RunSummary {
	summary := &models.RunSummary{
		Status:       "success",
		ExcludedFile: cfg.ExcludedFile,
		Alphabet:     cfg.Alphabet,
		TopWords:     mapreduce.TopN(result.Table, cfg.Top),
		Unbucketed:   buckets.Unbucketed(cfg.Alphabet, result.Buckets),
	}

	if readStats != nil {
		summary.Stats.Files = len(readStats.Files)
		summary.Stats.HTMLFiles = readStats.HTMLFiles
		summary.Stats.InputBytes = readStats.Bytes
	}

	summary.Stats.Tokens = len(result.Words)
	summary.Stats.ExcludedTokens = len(result.Words) - result.Table.Total()
	summary.Stats.DistinctWords = len(result.Table)
	summary.Stats.ExcludedCount = excludedCount
	summary.Stats.ExclusionList = len(distinct(result.Excluded))

	unbucketed := make(map[string]bool, len(summary.Unbucketed))
	for _, letter := range summary.Unbucketed {
		unbucketed[letter] = true
	}

	for _, letter := range result.Buckets.Keys() {
		bucket := result.Buckets[letter]
		occurrences := 0
		for _, wc := range bucket {
			occurrences += wc.Count
		}
		summary.Buckets = append(summary.Buckets, models.BucketSummary{
			Letter:      letter,
			Words:       len(bucket),
			Occurrences: occurrences,
		})
		if unbucketed[letter] {
			summary.Stats.UnbucketedWords += len(bucket)
		}
	}

	return summary
}

func distinct[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// ToHistoryRun converts a summary into a history record.
func ToHistoryRun(s *models.RunSummary, elapsed time.Duration) *db.Run {
	run := &db.Run{
		RunID:           s.RunID,
		InputDir:        s.InputDir,
		ExcludedFile:    s.ExcludedFile,
		Tokenizer:       s.Tokenizer,
		Alphabet:        s.Alphabet,
		FileCount:       s.Stats.Files,
		TokenCount:      s.Stats.Tokens,
		DistinctWords:   s.Stats.DistinctWords,
		ExcludedCount:   s.Stats.ExcludedCount,
		UnbucketedWords: s.Stats.UnbucketedWords,
		Language:        s.Language,
		Duration:        elapsed,
		CreatedAt:       time.Now(),
		TopWords:        s.TopWords,
	}
	for _, b := range s.Buckets {
		run.Buckets = append(run.Buckets, db.BucketCount{
			Letter:      b.Letter,
			WordCount:   b.Words,
			Occurrences: b.Occurrences,
		})
	}
	return run
}

// WriteSummary prints s in format. "auto" picks a table on a terminal and
// YAML otherwise.
func WriteSummary(w io.Writer, s *models.RunSummary, format string) error {
	switch strings.ToLower(format) {
	case "none":
		return nil
	case "auto", "":
		if isTerminal(w) {
			return writeTable(w, s)
		}
		return writeYAML(w, s)
	case "table":
		return writeTable(w, s)
	case "yaml":
		return writeYAML(w, s)
	default:
		return fmt.Errorf("unknown summary format %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeYAML(w io.Writer, v any) error {
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}

func writeTable(w io.Writer, s *models.RunSummary) error {
	overview := [][]string{
		{"Run", s.RunID},
		{"Input", s.InputDir},
		{"Output", s.OutputDir},
		{"Files", fmt.Sprintf("%s (%s)", humanize.Comma(int64(s.Stats.Files)), humanize.Bytes(uint64(s.Stats.InputBytes)))},
		{"Tokens", humanize.Comma(int64(s.Stats.Tokens))},
		{"Distinct words", humanize.Comma(int64(s.Stats.DistinctWords))},
		{"Excluded tokens", humanize.Comma(int64(s.Stats.ExcludedTokens))},
		{"Excluded distinct", humanize.Comma(int64(s.Stats.ExcludedCount))},
	}
	if s.Stats.UnbucketedWords > 0 {
		overview = append(overview, []string{"Unbucketed", fmt.Sprintf("%s (%s)",
			humanize.Comma(int64(s.Stats.UnbucketedWords)), strings.Join(s.Unbucketed, " "))})
	}
	if s.Language != "" {
		overview = append(overview, []string{"Language", s.Language})
	}

	bucketRows := make([][]string, 0, len(s.Buckets))
	for _, b := range s.Buckets {
		bucketRows = append(bucketRows, []string{b.Letter, humanize.Comma(int64(b.Words)), humanize.Comma(int64(b.Occurrences))})
	}

	topRows := make([][]string, 0, len(s.TopWords))
	for i, kc := range s.TopWords {
		topRows = append(topRows, []string{fmt.Sprintf("%d", i+1), kc.Word, humanize.Comma(int64(kc.Count))})
	}

	var b strings.Builder
	b.WriteString(renderTable(table.Row{"Summary", ""}, overview))
	b.WriteString("\n")
	if len(bucketRows) > 0 {
		b.WriteString(renderTable(table.Row{"Letter", "Words", "Occurrences"}, bucketRows, 2, 3))
		b.WriteString("\n")
	}
	if len(topRows) > 0 {
		b.WriteString(renderTable(table.Row{"#", "Word", "Count"}, topRows, 1, 3))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderTable draws rows under header, right-aligning the 1-based columns in
// numeric.
func renderTable(header table.Row, rows [][]string, numeric ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(numeric))
	for _, col := range numeric {
		configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
