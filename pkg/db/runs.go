package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/wordbucket/pkg/mapreduce"
)

// ErrRunNotFound is returned when a run ID is not in the history.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded counting run.
type Run struct {
	RunID           string                   `yaml:"run_id"`
	InputDir        string                   `yaml:"input_dir"`
	ExcludedFile    string                   `yaml:"excluded_file"`
	Tokenizer       string                   `yaml:"tokenizer"`
	Alphabet        string                   `yaml:"alphabet"`
	FileCount       int                      `yaml:"file_count"`
	TokenCount      int                      `yaml:"token_count"`
	DistinctWords   int                      `yaml:"distinct_words"`
	ExcludedCount   int                      `yaml:"excluded_count"`
	UnbucketedWords int                      `yaml:"unbucketed_words"`
	Language        string                   `yaml:"language,omitempty"`
	Duration        time.Duration            `yaml:"duration"`
	CreatedAt       time.Time                `yaml:"created_at"`
	TopWords        []mapreduce.KeywordCount `yaml:"top_words,omitempty"`
	Buckets         []BucketCount            `yaml:"buckets,omitempty"`
}

// BucketCount summarizes one non-empty letter bucket of a run.
type BucketCount struct {
	Letter      string `yaml:"letter"`
	WordCount   int    `yaml:"word_count"`
	Occurrences int    `yaml:"occurrences"`
}

// InsertRun stores run and its buckets in a single transaction.
func (db *DB) InsertRun(run *Run) error {
	if run.RunID == "" {
		return fmt.Errorf("run ID is required")
	}

	topWords, err := json.Marshal(run.TopWords)
	if err != nil {
		return fmt.Errorf("failed to marshal top words: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // No-op after Commit
	}()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, input_dir, excluded_file, tokenizer, alphabet,
			file_count, token_count, distinct_words, excluded_count, unbucketed_words,
			language, duration_ms, created_at, top_words)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.InputDir, run.ExcludedFile, run.Tokenizer, run.Alphabet,
		run.FileCount, run.TokenCount, run.DistinctWords, run.ExcludedCount, run.UnbucketedWords,
		run.Language, run.Duration.Milliseconds(), createdAt.UTC(), string(topWords))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, b := range run.Buckets {
		_, err = tx.Exec(`
			INSERT INTO run_buckets (run_id, letter, word_count, occurrences)
			VALUES (?, ?, ?, ?)
		`, run.RunID, b.Letter, b.WordCount, b.Occurrences)
		if err != nil {
			return fmt.Errorf("failed to insert bucket %q: %w", b.Letter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `run_id, input_dir, excluded_file, tokenizer, alphabet,
	file_count, token_count, distinct_words, excluded_count, unbucketed_words,
	language, duration_ms, created_at, top_words`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r          Run
		language   sql.NullString
		topWords   sql.NullString
		durationMS int64
	)
	err := row.Scan(&r.RunID, &r.InputDir, &r.ExcludedFile, &r.Tokenizer, &r.Alphabet,
		&r.FileCount, &r.TokenCount, &r.DistinctWords, &r.ExcludedCount, &r.UnbucketedWords,
		&language, &durationMS, &r.CreatedAt, &topWords)
	if err != nil {
		return nil, err
	}

	r.Language = language.String
	r.Duration = time.Duration(durationMS) * time.Millisecond
	if topWords.Valid && topWords.String != "" && topWords.String != "null" {
		if err := json.Unmarshal([]byte(topWords.String), &r.TopWords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal top words: %w", err)
		}
	}
	return &r, nil
}

// GetRun returns a run with its buckets.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Buckets, err = db.GetRunBuckets(runID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. Buckets are not loaded.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunBuckets returns the stored buckets of a run ordered by letter.
func (db *DB) GetRunBuckets(runID string) ([]BucketCount, error) {
	rows, err := db.Query(`
		SELECT letter, word_count, occurrences
		FROM run_buckets
		WHERE run_id = ?
		ORDER BY letter
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run buckets: %w", err)
	}
	defer rows.Close()

	var buckets []BucketCount
	for rows.Next() {
		var b BucketCount
		if err := rows.Scan(&b.Letter, &b.WordCount, &b.Occurrences); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// DeleteRun removes a run and its buckets.
func (db *DB) DeleteRun(runID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // No-op after Commit
	}()

	if _, err := tx.Exec("DELETE FROM run_buckets WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to delete run buckets: %w", err)
	}
	result, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	return tx.Commit()
}
