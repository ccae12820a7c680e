package scan

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/entry"
	"golang.org/x/sync/errgroup"
)

var errNotRegular = errors.New("not a regular file")

// Extractor reads file attributes for discovered regular files on a bounded
// pool of goroutines and returns records in discovery order.
type Extractor struct {
	opts      *ScanOptions
	fs        fsProvider
	sink      *diag.Sink
	extracted int64
	failed    int64
}

// NewExtractor creates an extractor reporting failures to sink.
func NewExtractor(opts *ScanOptions, sink *diag.Sink) *Extractor {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Extractor{opts: opts, fs: OS{}, sink: sink}
}

// Extracted returns the number of records built so far (safe for concurrent access).
func (x *Extractor) Extracted() int64 {
	return atomic.LoadInt64(&x.extracted)
}

// Failed returns the number of files whose attributes could not be read.
func (x *Extractor) Failed() int64 {
	return atomic.LoadInt64(&x.failed)
}

// Extract builds a record for every regular file in entries. Files whose
// attributes cannot be read are reported and dropped; the rest keep the
// order they have in entries.
func (x *Extractor) Extract(entries []entry.Discovered) []entry.Record {
	// Slot i belongs to entries[i]; workers never share a slot.
	slots := make([]entry.Record, len(entries))
	ok := make([]bool, len(entries))

	var g errgroup.Group
	g.SetLimit(x.opts.workers())

	for i, d := range entries {
		if d.Kind != entry.KindFile {
			continue
		}
		g.Go(func() error {
			rec, found := x.extract(d)
			if found {
				slots[i] = rec
				ok[i] = true
			}
			return nil
		})
	}
	// Workers never return errors; the group only bounds concurrency.
	g.Wait()

	records := make([]entry.Record, 0, atomic.LoadInt64(&x.extracted))
	for i := range slots {
		if ok[i] {
			records = append(records, slots[i])
		}
	}
	return records
}

func (x *Extractor) extract(d entry.Discovered) (entry.Record, bool) {
	attrs, err := x.fs.Attributes(d.Path)
	if err != nil {
		atomic.AddInt64(&x.failed, 1)
		x.sink.LogAndPrint(fmt.Sprintf("Error accessing file attributes: %s - %s", d.Path, errMessage(err)))
		return entry.Record{}, false
	}
	// Replaced by something other than a regular file since discovery.
	if !attrs.Regular {
		atomic.AddInt64(&x.failed, 1)
		x.sink.LogAndPrint(fmt.Sprintf("Error accessing file attributes: %s - %s", d.Path, errNotRegular))
		return entry.Record{}, false
	}

	atomic.AddInt64(&x.extracted, 1)
	return entry.Record{
		Name:     d.Name,
		Path:     d.Path,
		Created:  attrs.Created,
		Modified: attrs.Modified,
		Size:     attrs.Size,
	}, true
}
