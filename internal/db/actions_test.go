package db

import (
	"bytes"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dbpkg "github.com/dtnitsch/wordbucket/pkg/db"
	"github.com/urfave/cli/v2"
)

func setupHistory(t *testing.T, ids ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	database, err := dbpkg.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	defer database.Close()

	base := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	for i, id := range ids {
		run := &dbpkg.Run{
			RunID:         id,
			InputDir:      "/tmp/in",
			ExcludedFile:  "excluded",
			Tokenizer:     "fields",
			Alphabet:      "DKM",
			DistinctWords: i + 1,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			Buckets:       []dbpkg.BucketCount{{Letter: "D", WordCount: 1, Occurrences: 2}},
		}
		if err := database.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}
	return path
}

func newContext(t *testing.T, out *bytes.Buffer, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := append(Flags(), &cli.IntFlag{Name: "limit", Value: 10})
	for _, f := range flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	app := cli.NewApp()
	app.Writer = out
	return cli.NewContext(app, set, nil)
}

func TestRunsAction(t *testing.T) {
	path := setupHistory(t, "first", "second")

	var out bytes.Buffer
	if err := RunsAction(newContext(t, &out, "--history-db", path)); err != nil {
		t.Fatalf("RunsAction() error = %v", err)
	}

	text := out.String()
	if strings.Index(text, "second") > strings.Index(text, "first") {
		t.Errorf("runs not listed newest first:\n%s", text)
	}
	if !strings.Contains(text, "Total: 2 runs") {
		t.Errorf("missing total line:\n%s", text)
	}
}

func TestRunsActionEmpty(t *testing.T) {
	path := setupHistory(t)

	var out bytes.Buffer
	if err := RunsAction(newContext(t, &out, "--history-db", path)); err != nil {
		t.Fatalf("RunsAction() error = %v", err)
	}
	if !strings.Contains(out.String(), "No runs found") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunActionLatest(t *testing.T) {
	path := setupHistory(t, "first", "second")

	var out bytes.Buffer
	if err := RunAction(newContext(t, &out, "--history-db", path)); err != nil {
		t.Fatalf("RunAction() error = %v", err)
	}
	if !strings.Contains(out.String(), "run_id: second") {
		t.Errorf("output = %q, want latest run", out.String())
	}
	if !strings.Contains(out.String(), "letter: D") {
		t.Errorf("output = %q, want buckets", out.String())
	}
}

func TestRunActionByID(t *testing.T) {
	path := setupHistory(t, "first", "second")

	var out bytes.Buffer
	if err := RunAction(newContext(t, &out, "--history-db", path, "first")); err != nil {
		t.Fatalf("RunAction() error = %v", err)
	}
	if !strings.Contains(out.String(), "run_id: first") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunActionNoRuns(t *testing.T) {
	path := setupHistory(t)

	var out bytes.Buffer
	if err := RunAction(newContext(t, &out, "--history-db", path)); err == nil {
		t.Error("RunAction() error = nil, want error")
	}
}

func TestDeleteRunAction(t *testing.T) {
	path := setupHistory(t, "first")

	var out bytes.Buffer
	if err := DeleteRunAction(newContext(t, &out, "--history-db", path)); err == nil {
		t.Error("DeleteRunAction() without ID error = nil, want error")
	}
	if err := DeleteRunAction(newContext(t, &out, "--history-db", path, "first")); err != nil {
		t.Fatalf("DeleteRunAction() error = %v", err)
	}
	if err := DeleteRunAction(newContext(t, &out, "--history-db", path, "first")); err == nil {
		t.Error("DeleteRunAction() second call error = nil, want error")
	}
}
