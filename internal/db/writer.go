package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/michaelscutari/dirlist/internal/entry"
)

const insertRecordSQL = `INSERT INTO records (seq, name, path, ctime, mtime, size) VALUES (?, ?, ?, ?, ?, ?)`
const insertDiagnosticSQL = `INSERT INTO diagnostics (message) VALUES (?)`

// DefaultBatchSize is the number of rows written per transaction.
const DefaultBatchSize = 10000

// Ingester writes records and diagnostics to the index in batched transactions.
type Ingester struct {
	db        *sql.DB
	batchSize int

	records     int64
	diagnostics int64
}

// NewIngester creates a new ingester.
func NewIngester(db *sql.DB, batchSize int) *Ingester {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingester{db: db, batchSize: batchSize}
}

// Records inserts records keeping their order in the seq column.
func (ing *Ingester) Records(ctx context.Context, records []entry.Record) error {
	for start := 0; start < len(records); start += ing.batchSize {
		end := min(start+ing.batchSize, len(records))
		if err := ing.flushRecords(ctx, start, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// Diagnostics inserts diagnostic messages.
func (ing *Ingester) Diagnostics(ctx context.Context, messages []string) error {
	for start := 0; start < len(messages); start += ing.batchSize {
		end := min(start+ing.batchSize, len(messages))
		if err := ing.flushDiagnostics(ctx, messages[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// RecordCount returns the number of records written so far.
func (ing *Ingester) RecordCount() int64 {
	return atomic.LoadInt64(&ing.records)
}

// DiagnosticCount returns the number of diagnostics written so far.
func (ing *Ingester) DiagnosticCount() int64 {
	return atomic.LoadInt64(&ing.diagnostics)
}

func (ing *Ingester) flushRecords(ctx context.Context, offset int, batch []entry.Record) error {
	tx, err := ing.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range batch {
		_, err := stmt.ExecContext(ctx, offset+i+1, r.Name, r.Path, r.Created.UnixNano(), r.Modified.UnixNano(), int64(r.Size))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record %q: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	atomic.AddInt64(&ing.records, int64(len(batch)))
	return nil
}

func (ing *Ingester) flushDiagnostics(ctx context.Context, batch []string) error {
	tx, err := ing.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin diagnostic transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertDiagnosticSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare diagnostic statement: %w", err)
	}
	defer stmt.Close()

	for _, msg := range batch {
		if _, err := stmt.ExecContext(ctx, msg); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit diagnostic transaction: %w", err)
	}

	atomic.AddInt64(&ing.diagnostics, int64(len(batch)))
	return nil
}

// InitScanMeta records the start of a scan.
func InitScanMeta(db *sql.DB, scanID, root string, start time.Time) error {
	_, err := db.Exec(
		`INSERT INTO scan_meta (id, scan_id, root_path, start_time) VALUES (1, ?, ?, ?)`,
		scanID, root, start.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record scan start: %w", err)
	}
	return nil
}

// FinalizeScanMeta records totals and the end time of a scan.
func FinalizeScanMeta(db *sql.DB, end time.Time, fileCount, totalSize, errorCount int64) error {
	_, err := db.Exec(
		`UPDATE scan_meta SET end_time = ?, file_count = ?, total_size = ?, error_count = ? WHERE id = 1`,
		end.Unix(), fileCount, totalSize, errorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record scan totals: %w", err)
	}
	return nil
}
