// Package diag holds the diagnostic log: an append-only record of paths that
// were skipped or could not be read during a scan.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Listener receives every diagnostic after it has been written.
type Listener func(message string)

// Sink appends diagnostic lines to a writer, flushing after every line.
// It is safe for concurrent use and never returns errors to callers.
type Sink struct {
	mu        sync.Mutex
	out       io.Writer
	w         *bufio.Writer
	stderr    io.Writer
	listeners []Listener
	count     int64
}

// NewSink creates a sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{
		out:    w,
		w:      bufio.NewWriter(w),
		stderr: os.Stderr,
	}
}

// SetStderr redirects the sink's standard error channel.
func (s *Sink) SetStderr(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stderr = w
}

// AddListener registers l to be called with each logged message.
func (s *Sink) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Log appends message followed by a newline and flushes. A failed write is
// reported on stderr and otherwise swallowed.
func (s *Sink) Log(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.count, 1)

	if _, err := s.w.WriteString(message); err != nil {
		s.writeFailed(err)
	} else if err := s.w.WriteByte('\n'); err != nil {
		s.writeFailed(err)
	} else if err := s.w.Flush(); err != nil {
		s.writeFailed(err)
	}

	for _, l := range s.listeners {
		l(message)
	}
}

// LogAndPrint writes message to standard error and then logs it.
func (s *Sink) LogAndPrint(message string) {
	s.mu.Lock()
	fmt.Fprintln(s.stderr, message)
	s.mu.Unlock()
	s.Log(message)
}

// Logf formats according to a format specifier and logs the result.
func (s *Sink) Logf(format string, args ...any) {
	s.Log(fmt.Sprintf(format, args...))
}

// Count returns the number of diagnostics logged so far.
func (s *Sink) Count() int64 {
	return atomic.LoadInt64(&s.count)
}

func (s *Sink) writeFailed(err error) {
	// bufio errors are sticky; drop the partial line so later messages get a fresh attempt.
	s.w.Reset(s.out)
	fmt.Fprintf(s.stderr, "Failed to write error: %v\n", err)
}
