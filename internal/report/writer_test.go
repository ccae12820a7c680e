package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/entry"
	"github.com/stretchr/testify/assert"
)

// flakyWriter fails the Nth write (1-based).
type flakyWriter struct {
	failOn int
	calls  int
	buf    bytes.Buffer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls == w.failOn {
		return 0, errors.New("no space left on device")
	}
	return w.buf.Write(p)
}

func fixedFormat(t time.Time) string { return t.UTC().Format("2006-01-02") }

func records() []entry.Record {
	ts := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []entry.Record{
		{Name: "a.txt", Path: "/r/a.txt", Created: ts, Modified: ts, Size: 10},
		{Name: "b.txt", Path: "/r/sub/b.txt", Created: ts, Modified: ts, Size: 20},
		{Name: "c.txt", Path: "/r/c.txt", Created: ts, Modified: ts, Size: 30},
	}
}

func TestWriteInOrder(t *testing.T) {
	var out, log bytes.Buffer
	w := NewWriter(&out, diag.NewSink(&log), fixedFormat)

	stats := w.Write(records())

	assert.Equal(t,
		"a.txt|/r/a.txt|2024-03-01|2024-03-01|10\n"+
			"b.txt|/r/sub/b.txt|2024-03-01|2024-03-01|20\n"+
			"c.txt|/r/c.txt|2024-03-01|2024-03-01|30\n",
		out.String())
	assert.Equal(t, Stats{Lines: 3, TotalSize: 60}, stats)
	assert.Empty(t, log.String())
}

func TestWriteContinuesAfterLineFailure(t *testing.T) {
	out := &flakyWriter{failOn: 2}
	var log, stderr bytes.Buffer
	sink := diag.NewSink(&log)
	sink.SetStderr(&stderr)
	w := NewWriter(out, sink, fixedFormat)

	stats := w.Write(records())

	assert.Equal(t,
		"a.txt|/r/a.txt|2024-03-01|2024-03-01|10\n"+
			"c.txt|/r/c.txt|2024-03-01|2024-03-01|30\n",
		out.buf.String())
	assert.Equal(t, Stats{Lines: 2, Failed: 1, TotalSize: 40}, stats)
	assert.Equal(t, "Error writing line: no space left on device\n", log.String())
	assert.Equal(t, "Error writing line: no space left on device\n", stderr.String())
}
