package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/michaelscutari/dirlist/internal/db"

	_ "modernc.org/sqlite"
)

// openIndex opens an existing index snapshot for reading.
func openIndex(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("no index given: pass --db <file> (e.g. ./<name>-latest.db)")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.ApplyReadPragmas(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	return database, nil
}
