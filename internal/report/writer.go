// Package report serializes inventory records as pipe-delimited lines.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/entry"
)

// Stats summarizes one Write call.
type Stats struct {
	Lines     int64
	Failed    int64
	TotalSize uint64
}

// Writer writes records to an output stream in the order given. It is meant
// to be driven by a single goroutine.
type Writer struct {
	out    io.Writer
	sink   *diag.Sink
	format func(time.Time) string
}

// NewWriter creates a writer. Line failures are reported to sink.
func NewWriter(out io.Writer, sink *diag.Sink, format func(time.Time) string) *Writer {
	return &Writer{out: out, sink: sink, format: format}
}

// Write emits one line per record. A failed line is reported and skipped;
// it never stops the remaining records from being written.
func (w *Writer) Write(records []entry.Record) Stats {
	var stats Stats
	for _, r := range records {
		if _, err := io.WriteString(w.out, r.Line(w.format)+"\n"); err != nil {
			stats.Failed++
			w.sink.LogAndPrint(fmt.Sprintf("Error writing line: %v", err))
			continue
		}
		stats.Lines++
		stats.TotalSize += r.Size
	}
	return stats
}
