package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/wordbucket/pkg/mapreduce"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	return database
}

func sampleRun(id string, createdAt time.Time) *Run {
	return &Run{
		RunID:         id,
		InputDir:      "/tmp/rhyme",
		ExcludedFile:  "excluded",
		Tokenizer:     "fields",
		Alphabet:      "ABCDEFGHIJKLMNOPQRSTUVWXYZÆØÅ",
		FileCount:     2,
		TokenCount:    34,
		DistinctWords: 20,
		ExcludedCount: 4,
		Language:      "da",
		Duration:      1500 * time.Millisecond,
		CreatedAt:     createdAt,
		TopWords: []mapreduce.KeywordCount{
			{Word: "OST", Count: 6},
			{Word: "DE", Count: 2},
		},
		Buckets: []BucketCount{
			{Letter: "O", WordCount: 2, Occurrences: 7},
			{Letter: "D", WordCount: 3, Occurrences: 4},
		},
	}
}

func TestOpenPathInitializesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	database, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
	database.Close()

	// Reopening an initialized database must not fail.
	database, err = OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() second open error = %v", err)
	}
	database.Close()
}

func TestOpenPathCompletesPartialSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	database, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	if _, err := database.Exec("DROP TABLE run_buckets"); err != nil {
		t.Fatalf("drop run_buckets: %v", err)
	}
	database.Close()

	database, err = OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() reopen error = %v", err)
	}
	defer database.Close()

	if _, err := database.GetRunBuckets("missing"); err != nil {
		t.Errorf("GetRunBuckets() after reopen error = %v", err)
	}
}

func TestInsertAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	if err := db.InsertRun(sampleRun("run-1", created)); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	run, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if run.ExcludedCount != 4 {
		t.Errorf("run.ExcludedCount = %d, want 4", run.ExcludedCount)
	}
	if run.Language != "da" {
		t.Errorf("run.Language = %q, want %q", run.Language, "da")
	}
	if run.Duration != 1500*time.Millisecond {
		t.Errorf("run.Duration = %v, want 1.5s", run.Duration)
	}
	if !run.CreatedAt.Equal(created) {
		t.Errorf("run.CreatedAt = %v, want %v", run.CreatedAt, created)
	}
	if len(run.TopWords) != 2 || run.TopWords[0].Word != "OST" || run.TopWords[0].Count != 6 {
		t.Errorf("run.TopWords = %v", run.TopWords)
	}
	if len(run.Buckets) != 2 {
		t.Fatalf("len(run.Buckets) = %d, want 2", len(run.Buckets))
	}
	if run.Buckets[0].Letter != "D" || run.Buckets[1].Letter != "O" {
		t.Errorf("run.Buckets not ordered by letter: %v", run.Buckets)
	}
}

func TestInsertRunRequiresID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun(&Run{}); err == nil {
		t.Error("InsertRun() with empty ID error = nil, want error")
	}
}

func TestInsertRunDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Now()
	if err := db.InsertRun(sampleRun("dup", now)); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if err := db.InsertRun(sampleRun("dup", now)); err == nil {
		t.Error("InsertRun() duplicate error = nil, want error")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		if err := db.InsertRun(sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("InsertRun(%s) error = %v", id, err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "newest" || runs[1].RunID != "middle" {
		t.Errorf("ListRuns() order = %s, %s; want newest, middle", runs[0].RunID, runs[1].RunID)
	}
	if runs[0].Buckets != nil {
		t.Errorf("ListRuns() loaded buckets: %v", runs[0].Buckets)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetRun("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestDeleteRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun(sampleRun("gone", time.Now())); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if err := db.DeleteRun("gone"); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}

	buckets, err := db.GetRunBuckets("gone")
	if err != nil {
		t.Fatalf("GetRunBuckets() error = %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("GetRunBuckets() after delete = %v, want empty", buckets)
	}

	if err := db.DeleteRun("gone"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() second call error = %v, want ErrRunNotFound", err)
	}
}
