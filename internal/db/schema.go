package db

import (
	"database/sql"
	"fmt"
)

const recordsTableDDL = `
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    ctime INTEGER NOT NULL,
    mtime INTEGER NOT NULL,
    size INTEGER NOT NULL
);
`

const diagnosticsTableDDL = `
CREATE TABLE IF NOT EXISTS diagnostics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message TEXT NOT NULL
);
`

const scanMetaTableDDL = `
CREATE TABLE IF NOT EXISTS scan_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    scan_id TEXT NOT NULL,
    root_path TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    file_count INTEGER DEFAULT 0,
    total_size INTEGER DEFAULT 0,
    error_count INTEGER DEFAULT 0
);
`

const recordsPathIndexDDL = `CREATE INDEX IF NOT EXISTS idx_records_path ON records(path);`
const recordsSizeIndexDDL = `CREATE INDEX IF NOT EXISTS idx_records_size ON records(size DESC);`
const recordsMtimeIndexDDL = `CREATE INDEX IF NOT EXISTS idx_records_mtime ON records(mtime DESC);`

// InitSchema creates all tables in the database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		recordsTableDDL,
		diagnosticsTableDDL,
		scanMetaTableDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for optimal write performance during ingestion.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// ApplyReadPragmas configures SQLite for read-only browsing.
func ApplyReadPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA query_only = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// BuildIndexes creates indexes after the initial data load for better performance.
func BuildIndexes(db *sql.DB) error {
	indexes := []string{
		recordsPathIndexDDL,
		recordsSizeIndexDDL,
		recordsMtimeIndexDDL,
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Finalize prepares the database for read-only access.
func Finalize(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA optimize"); err != nil {
		return fmt.Errorf("failed to optimize: %w", err)
	}

	// Switch from WAL to DELETE so the snapshot is a single file
	if _, err := db.Exec("PRAGMA journal_mode = DELETE"); err != nil {
		return fmt.Errorf("failed to set journal mode: %w", err)
	}

	return nil
}
