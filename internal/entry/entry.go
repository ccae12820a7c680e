package entry

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Kind represents the type of filesystem entry.
type Kind uint8

const (
	KindFile    Kind = 0
	KindDir     Kind = 1
	KindSymlink Kind = 2
	KindOther   Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindFromMode derives the Kind from an os.FileMode.
func KindFromMode(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Discovered is a path found by the walker. It is consumed once by the
// extractor and not retained afterwards.
type Discovered struct {
	Path string // Absolute
	Name string
	Kind Kind
}

// Record is one inventory line: a regular file and its attributes.
type Record struct {
	Name     string
	Path     string
	Created  time.Time
	Modified time.Time
	Size     uint64
}

// Line renders the record as a report line (without the line terminator)
// using the given timestamp formatter.
func (r Record) Line(format func(time.Time) string) string {
	var b strings.Builder
	b.Grow(len(r.Name) + len(r.Path) + 64)
	b.WriteString(r.Name)
	b.WriteByte('|')
	b.WriteString(r.Path)
	b.WriteByte('|')
	b.WriteString(format(r.Created))
	b.WriteByte('|')
	b.WriteString(format(r.Modified))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(r.Size, 10))
	return b.String()
}

// ScanMeta holds metadata about a scan stored in the inventory index.
type ScanMeta struct {
	ScanID     string
	RootPath   string
	StartTime  time.Time
	EndTime    time.Time
	FileCount  int64
	TotalSize  int64
	ErrorCount int64
}
