package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/michaelscutari/dirlist/internal/entry"
)

// LoadRecords loads records ordered by sortBy (size, name, mtime, path or
// seq). A limit of zero or less returns every record.
func LoadRecords(db *sql.DB, sortBy string, limit int) ([]entry.Record, error) {
	orderClause := "seq ASC"
	switch sortBy {
	case "size":
		orderClause = "size DESC, seq ASC"
	case "name":
		orderClause = "name ASC, seq ASC"
	case "mtime":
		orderClause = "mtime DESC, seq ASC"
	case "path":
		orderClause = "path ASC"
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := fmt.Sprintf(`
		SELECT name, path, ctime, mtime, size
		FROM records
		ORDER BY %s
		LIMIT ?
	`, orderClause)

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []entry.Record
	for rows.Next() {
		var r entry.Record
		var ctime, mtime, size int64
		if err := rows.Scan(&r.Name, &r.Path, &ctime, &mtime, &size); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		r.Created = time.Unix(0, ctime)
		r.Modified = time.Unix(0, mtime)
		r.Size = uint64(size)
		records = append(records, r)
	}

	return records, rows.Err()
}

// LoadDiagnostics returns logged diagnostics in the order they were written.
func LoadDiagnostics(db *sql.DB, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`SELECT message FROM diagnostics ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// GetScanMeta retrieves scan metadata.
func GetScanMeta(db *sql.DB) (*entry.ScanMeta, error) {
	var m entry.ScanMeta
	var startTime, endTime int64

	err := db.QueryRow(`
		SELECT scan_id, root_path, start_time, COALESCE(end_time, 0), file_count, total_size, error_count
		FROM scan_meta WHERE id = 1
	`).Scan(&m.ScanID, &m.RootPath, &startTime, &endTime, &m.FileCount, &m.TotalSize, &m.ErrorCount)

	if err != nil {
		return nil, err
	}

	m.StartTime = time.Unix(startTime, 0)
	if endTime > 0 {
		m.EndTime = time.Unix(endTime, 0)
	}

	return &m, nil
}
