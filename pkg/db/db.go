// Package db keeps the history of counting runs in a local SQLite file.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "wordbucket.db"

// historyTables must all exist before a database is considered initialized.
var historyTables = []string{"runs", "run_buckets"}

// DB is a history database handle.
type DB struct {
	*sql.DB
	path string
}

// DefaultPath is wordbucket.db beside the running binary.
func DefaultPath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate wordbucket binary: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultDBName), nil
}

// Open opens the history database at DefaultPath.
func Open() (*DB, error) {
	dbPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the history database at dbPath, creating the file and the
// run tables on first use. An empty dbPath means DefaultPath.
func OpenPath(dbPath string) (*DB, error) {
	if dbPath == "" {
		return Open()
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", dbPath, err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{DB: sqlDB, path: dbPath}
	if err := db.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare history schema: %w", err)
	}
	return db, nil
}

// migrate creates the run tables unless every one of them is present.
func (db *DB) migrate() error {
	var present int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN (?, ?)",
		historyTables[0], historyTables[1],
	).Scan(&present)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if present == len(historyTables) {
		return nil
	}
	return db.InitSchema()
}

func (db *DB) Path() string {
	return db.path
}

// InitSchema applies the run schema. Every statement is IF NOT EXISTS, so it
// is safe on a partially initialized file.
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}
