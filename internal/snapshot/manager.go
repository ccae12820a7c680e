// Package snapshot runs a complete inventory: it owns the output files, the
// output directory lock and the optional SQLite index snapshot.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/pathutil"
	"github.com/michaelscutari/dirlist/internal/report"
	"github.com/michaelscutari/dirlist/internal/scan"
)

const lockFileName = ".dirlist.lock"

// ProgressFunc is called periodically with current scan progress.
type ProgressFunc func(discovered, extracted, diagnostics int64)

// StageFunc is called when the scan stage changes.
type StageFunc func(stage string)

// Result describes the files produced by a run.
type Result struct {
	ReportPath  string
	ErrorPath   string
	IndexPath   string // empty unless indexing is enabled
	Files       int64
	Failed      int64
	Diagnostics int64
	TotalSize   uint64
}

// Manager handles the scan lifecycle including locking and retention.
type Manager struct {
	outputDir        string
	retention        int
	index            bool
	logger           *slog.Logger
	stderr           io.Writer
	progressFunc     ProgressFunc
	progressInterval time.Duration
	stageFunc        StageFunc
}

// NewManager creates a manager writing into outputDir. retention bounds the
// number of index snapshots kept per root name (0 = unlimited).
func NewManager(outputDir string, retention int) *Manager {
	return &Manager{
		outputDir:        outputDir,
		retention:        retention,
		logger:           slog.Default(),
		stderr:           os.Stderr,
		progressInterval: 100 * time.Millisecond,
	}
}

// SetIndex enables writing a SQLite index snapshot after the report.
func (m *Manager) SetIndex(enabled bool) {
	m.index = enabled
}

// SetLogger sets the operational logger.
func (m *Manager) SetLogger(l *slog.Logger) {
	m.logger = l
}

// SetStderr redirects the standard error echo of diagnostics.
func (m *Manager) SetStderr(w io.Writer) {
	m.stderr = w
}

// SetProgressFunc sets a callback for progress updates during scan.
func (m *Manager) SetProgressFunc(f ProgressFunc) {
	m.progressFunc = f
}

// SetStageFunc sets a callback for scan stage updates.
func (m *Manager) SetStageFunc(f StageFunc) {
	m.stageFunc = f
}

// ResolveRoot checks that root exists and is a directory and returns it with
// symlinks resolved. Only the root is resolved; links below it are never
// followed by the walk.
func ResolveRoot(root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to access root: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return resolved, nil
}

// RunScan inventories root and writes the report and diagnostic files to the
// output directory. Output files are named after root as given; a symlinked
// root is walked at its target. Per-path problems end up in the diagnostic
// file; an error is returned only when the run cannot start or its outputs
// cannot be created.
func (m *Manager) RunScan(ctx context.Context, root string, opts *scan.ScanOptions) (*Result, error) {
	if opts == nil {
		opts = scan.DefaultOptions()
	}
	walkRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	lockPath := filepath.Join(m.outputDir, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock: %w", ErrLocked)
	}
	defer func() {
		// Removed while still held so a waiting run never locks a stale file.
		os.Remove(lockPath)
		lock.Unlock()
	}()

	base := pathutil.BaseName(root)
	res := &Result{
		ReportPath: filepath.Join(m.outputDir, pathutil.ReportFileName(base)),
		ErrorPath:  filepath.Join(m.outputDir, pathutil.ErrorFileName(base)),
	}

	errFile, err := os.Create(res.ErrorPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create error log: %w", err)
	}
	defer errFile.Close()

	reportFile, err := os.Create(res.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	defer reportFile.Close()

	sink := diag.NewSink(errFile)
	sink.SetStderr(m.stderr)

	// Listeners run under the sink lock, so appends are serialized.
	var diagnostics []string
	if m.index {
		sink.AddListener(func(msg string) {
			diagnostics = append(diagnostics, msg)
		})
	}

	start := time.Now()
	walker := scan.NewWalker(sink)
	extractor := scan.NewExtractor(opts, sink)

	stopProgress := m.startProgress(walker, extractor, sink)

	m.setStage("walk")
	entries := walker.Walk(walkRoot)
	m.logger.Debug("walk finished", "root", walkRoot, "entries", len(entries), "elapsed", time.Since(start))

	m.setStage("extract")
	records := extractor.Extract(entries)
	m.logger.Debug("extraction finished", "records", len(records), "failed", extractor.Failed())

	m.setStage("write")
	stats := report.NewWriter(reportFile, sink, opts.Formatter().Format).Write(records)
	stopProgress()

	if err := reportFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close report: %w", err)
	}
	if err := errFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close error log: %w", err)
	}

	res.Files = stats.Lines
	res.Failed = stats.Failed
	res.TotalSize = stats.TotalSize
	res.Diagnostics = sink.Count()
	m.logger.Debug("report written", "path", res.ReportPath, "lines", stats.Lines, "failed", stats.Failed)

	if !m.index {
		return res, nil
	}

	m.setStage("index")
	snap := &indexSnapshot{
		root:        walkRoot,
		base:        base,
		start:       start,
		records:     records,
		diagnostics: diagnostics,
		stats:       stats,
	}
	indexPath, err := m.writeIndex(ctx, snap)
	if err != nil {
		return res, fmt.Errorf("failed to write index: %w", err)
	}
	res.IndexPath = indexPath
	return res, nil
}

func (m *Manager) setStage(stage string) {
	if m.stageFunc != nil {
		m.stageFunc(stage)
	}
}

// startProgress polls the scan counters until the returned func is called.
func (m *Manager) startProgress(w *scan.Walker, x *scan.Extractor, s *diag.Sink) func() {
	if m.progressFunc == nil {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(m.progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				m.progressFunc(w.Visited(), x.Extracted(), s.Count())
				return
			case <-ticker.C:
				m.progressFunc(w.Visited(), x.Extracted(), s.Count())
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}
