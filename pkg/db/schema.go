package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per counting run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,            -- UUID
    input_dir TEXT NOT NULL,
    excluded_file TEXT NOT NULL,
    tokenizer TEXT NOT NULL,
    alphabet TEXT NOT NULL,
    file_count INTEGER NOT NULL DEFAULT 0,
    token_count INTEGER NOT NULL DEFAULT 0,
    distinct_words INTEGER NOT NULL DEFAULT 0,
    excluded_count INTEGER NOT NULL DEFAULT 0,
    unbucketed_words INTEGER NOT NULL DEFAULT 0,
    language TEXT,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

    -- Top words as JSON array: [{"word": "OST", "count": 6}, ...]
    top_words TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_input_dir ON runs(input_dir);

-- Per-letter word counts of a run; only non-empty buckets are stored
CREATE TABLE IF NOT EXISTS run_buckets (
    run_id TEXT NOT NULL,
    letter TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    occurrences INTEGER NOT NULL,
    PRIMARY KEY (run_id, letter),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
`
