package scan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietSink(buf *bytes.Buffer) *diag.Sink {
	s := diag.NewSink(buf)
	s.SetStderr(&bytes.Buffer{})
	return s
}

func TestExtractPreservesDiscoveryOrder(t *testing.T) {
	const n = 40
	fsys := fakeFS{}
	var entries []entry.Discovered
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("/r/f%02d", i)
		node := file(uint64(i))
		// Earlier files finish last.
		node.delay = time.Duration(n-i) * time.Millisecond
		fsys[p] = node
		entries = append(entries, entry.Discovered{Path: p, Name: filepath.Base(p), Kind: entry.KindFile})
	}

	var log bytes.Buffer
	x := NewExtractor(DefaultOptions().WithWorkers(8), quietSink(&log))
	x.fs = fsys
	records := x.Extract(entries)

	require.Len(t, records, n)
	for i, r := range records {
		assert.Equal(t, entries[i].Path, r.Path)
		assert.Equal(t, uint64(i), r.Size)
	}
	assert.EqualValues(t, n, x.Extracted())
	assert.Empty(t, log.String())
}

func TestExtractSkipsNonRegular(t *testing.T) {
	fsys := fakeFS{
		"/r/a":    file(1),
		"/r/gone": file(2),
	}
	fsys["/r/gone"].attrs.Regular = false

	entries := []entry.Discovered{
		{Path: "/r", Name: "r", Kind: entry.KindDir},
		{Path: "/r/a", Name: "a", Kind: entry.KindFile},
		{Path: "/r/link", Name: "link", Kind: entry.KindSymlink},
		{Path: "/r/fifo", Name: "fifo", Kind: entry.KindOther},
		{Path: "/r/gone", Name: "gone", Kind: entry.KindFile},
	}

	var log bytes.Buffer
	x := NewExtractor(DefaultOptions().WithWorkers(2), quietSink(&log))
	x.fs = fsys
	records := x.Extract(entries)

	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Name)
	// Only the file replaced after discovery is reported; kinds filtered
	// by the walk listing are not.
	assert.Equal(t, "Error accessing file attributes: /r/gone - not a regular file\n", log.String())
	assert.EqualValues(t, 1, x.Failed())
}

func TestExtractReportsAttributeFailures(t *testing.T) {
	fsys := fakeFS{
		"/r/a": file(1),
		"/r/b": file(2),
		"/r/c": file(3),
	}
	fsys["/r/b"].attrErr = errors.New("permission denied")

	var log, stderr bytes.Buffer
	sink := diag.NewSink(&log)
	sink.SetStderr(&stderr)
	x := NewExtractor(DefaultOptions().WithWorkers(3), sink)
	x.fs = fsys

	records := x.Extract([]entry.Discovered{
		{Path: "/r/a", Name: "a", Kind: entry.KindFile},
		{Path: "/r/b", Name: "b", Kind: entry.KindFile},
		{Path: "/r/c", Name: "c", Kind: entry.KindFile},
	})

	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Name)
	assert.Equal(t, "c", records[1].Name)
	want := "Error accessing file attributes: /r/b - permission denied\n"
	assert.Equal(t, want, log.String())
	assert.Equal(t, want, stderr.String())
	assert.EqualValues(t, 1, x.Failed())
}

func TestWalkAndExtractRealTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 20)

	var log bytes.Buffer
	sink := quietSink(&log)
	entries := NewWalker(sink).Walk(root)
	records := NewExtractor(DefaultOptions(), sink).Extract(entries)

	require.Len(t, records, 2)
	assert.Equal(t, "a.txt", records[0].Name)
	assert.Equal(t, filepath.Join(root, "a.txt"), records[0].Path)
	assert.EqualValues(t, 10, records[0].Size)
	assert.Equal(t, "b.txt", records[1].Name)
	assert.EqualValues(t, 20, records[1].Size)

	info, err := os.Stat(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.True(t, records[0].Modified.Equal(info.ModTime()))
	assert.False(t, records[0].Created.IsZero())
	assert.Empty(t, log.String())
}

func TestExtractFileDeletedAfterDiscovery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), 4)
	writeFile(t, filepath.Join(root, "vanish.txt"), 5)

	var log bytes.Buffer
	sink := quietSink(&log)
	entries := NewWalker(sink).Walk(root)
	require.NoError(t, os.Remove(filepath.Join(root, "vanish.txt")))

	records := NewExtractor(DefaultOptions(), sink).Extract(entries)

	require.Len(t, records, 1)
	assert.Equal(t, "keep.txt", records[0].Name)
	assert.Equal(t,
		"Error accessing file attributes: "+filepath.Join(root, "vanish.txt")+" - no such file or directory\n",
		log.String())
}
