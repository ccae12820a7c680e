package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/michaelscutari/dirlist/internal/diag"
	"github.com/michaelscutari/dirlist/internal/entry"
)

// Outcome classifies what happened when a path was visited.
type Outcome uint8

const (
	// Visited paths are part of the walk result.
	Visited Outcome = iota
	// SkippedSubtree paths, and everything below them, are left out.
	SkippedSubtree
	// Failed paths are left out; siblings are still visited.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Visited:
		return "visited"
	case SkippedSubtree:
		return "skipped"
	default:
		return "failed"
	}
}

// Visit is the tagged result of visiting one path.
type Visit struct {
	Outcome Outcome
	Entry   entry.Discovered
	// Reason is the diagnostic line for skipped and failed visits.
	Reason string

	children []string
}

// Walker traverses a directory tree depth-first, one directory at a time.
type Walker struct {
	fs      fsProvider
	sink    *diag.Sink
	visited int64
}

// NewWalker creates a walker reporting problems to sink.
func NewWalker(sink *diag.Sink) *Walker {
	return &Walker{fs: OS{}, sink: sink}
}

// Visited returns the number of paths visited so far (safe for concurrent access).
func (w *Walker) Visited() int64 {
	return atomic.LoadInt64(&w.visited)
}

// Walk returns every path under root, root included, in pre-order. Paths that
// cannot be visited are reported to the sink and left out. Walk never fails;
// if root itself cannot be read the result is empty.
func (w *Walker) Walk(root string) []entry.Discovered {
	var found []entry.Discovered

	if _, err := w.fs.Lstat(root); err != nil {
		w.sink.Logf("Error walking file tree: %s", errMessage(err))
		return found
	}

	stack := []string{root}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := w.visit(path)
		if v.Outcome != Visited {
			w.sink.Log(v.Reason)
			continue
		}

		atomic.AddInt64(&w.visited, 1)
		found = append(found, v.Entry)

		// Push in reverse so children pop in listing order.
		for i := len(v.children) - 1; i >= 0; i-- {
			stack = append(stack, v.children[i])
		}
	}

	return found
}

func (w *Walker) visit(path string) Visit {
	info, err := w.fs.Lstat(path)
	if err != nil {
		return visitFailed(path, err)
	}

	d := entry.Discovered{
		Path: path,
		Name: info.Name(),
		Kind: entry.KindFromMode(info.Mode()),
	}
	if d.Kind != entry.KindDir {
		return Visit{Outcome: Visited, Entry: d}
	}

	if !w.fs.Readable(path) {
		return Visit{
			Outcome: SkippedSubtree,
			Entry:   d,
			Reason:  fmt.Sprintf("Skipping unreadable directory: %s", path),
		}
	}

	dirEntries, err := w.fs.ReadDir(path)
	if err != nil {
		return visitFailed(path, err)
	}

	children := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		children = append(children, filepath.Join(path, de.Name()))
	}

	return Visit{Outcome: Visited, Entry: d, children: children}
}

func visitFailed(path string, err error) Visit {
	if errors.Is(err, fs.ErrPermission) {
		return Visit{
			Outcome: SkippedSubtree,
			Entry:   entry.Discovered{Path: path, Name: filepath.Base(path)},
			Reason:  fmt.Sprintf("Access denied (skipped): %s", path),
		}
	}
	return Visit{
		Outcome: Failed,
		Entry:   entry.Discovered{Path: path, Name: filepath.Base(path)},
		Reason:  fmt.Sprintf("Error visiting: %s - %s", path, errMessage(err)),
	}
}
