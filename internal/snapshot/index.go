package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/michaelscutari/dirlist/internal/db"
	"github.com/michaelscutari/dirlist/internal/entry"
	"github.com/michaelscutari/dirlist/internal/report"

	_ "modernc.org/sqlite"
)

const snapshotTimeLayout = "20060102-150405"

type indexSnapshot struct {
	root        string
	base        string
	start       time.Time
	records     []entry.Record
	diagnostics []string
	stats       report.Stats
}

// writeIndex builds the index in a temp file, renames it into place, points
// the latest link at it and prunes old snapshots.
func (m *Manager) writeIndex(ctx context.Context, snap *indexSnapshot) (string, error) {
	tempPath := filepath.Join(m.outputDir, fmt.Sprintf(".%s-temp-%d.db", snap.base, time.Now().UnixNano()))
	if err := buildIndex(ctx, tempPath, snap); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	finalName := SnapshotName(snap.base, time.Now())
	finalPath := filepath.Join(m.outputDir, finalName)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to rename database: %w", err)
	}

	// Swap the link via temp symlink + rename so readers never see it missing.
	latestPath := filepath.Join(m.outputDir, LatestName(snap.base))
	tempLink := latestPath + ".tmp"
	os.Remove(tempLink)
	if err := os.Symlink(finalName, tempLink); err != nil {
		m.logger.Warn("failed to create latest symlink", "path", latestPath, "err", err)
	} else if err := os.Rename(tempLink, latestPath); err != nil {
		os.Remove(tempLink)
		m.logger.Warn("failed to update latest symlink", "path", latestPath, "err", err)
	}

	if err := m.pruneOldSnapshots(snap.base); err != nil {
		m.logger.Warn("failed to prune old snapshots", "err", err)
	}

	m.logger.Debug("index written", "path", finalPath, "records", len(snap.records), "diagnostics", len(snap.diagnostics))
	return finalPath, nil
}

func buildIndex(ctx context.Context, path string, snap *indexSnapshot) error {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.ApplyWritePragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := db.InitScanMeta(database, uuid.NewString(), snap.root, snap.start); err != nil {
		return err
	}

	ing := db.NewIngester(database, db.DefaultBatchSize)
	if err := ing.Records(ctx, snap.records); err != nil {
		return err
	}
	if err := ing.Diagnostics(ctx, snap.diagnostics); err != nil {
		return err
	}

	if err := db.BuildIndexes(database); err != nil {
		return fmt.Errorf("failed to build indexes: %w", err)
	}
	err = db.FinalizeScanMeta(database, time.Now(),
		ing.RecordCount(), int64(snap.stats.TotalSize), ing.DiagnosticCount())
	if err != nil {
		return err
	}
	if err := db.Finalize(database); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}
	return database.Close()
}

// SnapshotName returns the file name of an index snapshot taken at t.
func SnapshotName(base string, t time.Time) string {
	return fmt.Sprintf("%s-%s.db", base, t.Format(snapshotTimeLayout))
}

// LatestName returns the name of the symlink to the newest snapshot of base.
func LatestName(base string) string {
	return base + "-latest.db"
}

func snapshotPattern(base string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-\d{8}-\d{6}\.db$`)
}

func (m *Manager) pruneOldSnapshots(base string) error {
	if m.retention <= 0 {
		return nil
	}

	snapshots, err := m.ListSnapshots(base)
	if err != nil {
		return err
	}

	// Names embed the timestamp, so lexical order is chronological.
	for len(snapshots) > m.retention {
		if err := os.Remove(snapshots[0]); err != nil {
			return fmt.Errorf("failed to remove %s: %w", snapshots[0], err)
		}
		snapshots = snapshots[1:]
	}

	return nil
}

// GetLatest returns the path to the latest snapshot of base.
func (m *Manager) GetLatest(base string) (string, error) {
	latestPath := filepath.Join(m.outputDir, LatestName(base))
	resolved, err := filepath.EvalSymlinks(latestPath)
	if err != nil {
		return "", fmt.Errorf("no latest snapshot found: %w", err)
	}
	return resolved, nil
}

// ListSnapshots returns all snapshots of base, oldest first.
func (m *Manager) ListSnapshots(base string) ([]string, error) {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return nil, err
	}

	pattern := snapshotPattern(base)
	var snapshots []string
	for _, e := range entries {
		if !e.IsDir() && pattern.MatchString(e.Name()) {
			snapshots = append(snapshots, filepath.Join(m.outputDir, e.Name()))
		}
	}

	sort.Strings(snapshots)
	return snapshots, nil
}
