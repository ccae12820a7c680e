package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type fakeNode struct {
	mode       fs.FileMode
	children   []string
	unreadable bool
	lstatErr   error
	readDirErr error
	attrErr    error
	attrs      Attributes
	delay      time.Duration
}

type fakeFS map[string]*fakeNode

type fakeInfo struct {
	name string
	mode fs.FileMode
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return i.mode }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.mode.IsDir() }
func (i fakeInfo) Sys() any           { return nil }

func (f fakeFS) Lstat(name string) (os.FileInfo, error) {
	n, ok := f[name]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	if n.lstatErr != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: n.lstatErr}
	}
	return fakeInfo{name: filepath.Base(name), mode: n.mode}, nil
}

func (f fakeFS) ReadDir(name string) ([]os.DirEntry, error) {
	n := f[name]
	if n.readDirErr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: n.readDirErr}
	}
	out := make([]os.DirEntry, 0, len(n.children))
	for _, c := range n.children {
		child := f[filepath.Join(name, c)]
		mode := fs.FileMode(0)
		if child != nil {
			mode = child.mode
		}
		out = append(out, fs.FileInfoToDirEntry(fakeInfo{name: c, mode: mode}))
	}
	return out, nil
}

func (f fakeFS) Readable(name string) bool {
	return !f[name].unreadable
}

func (f fakeFS) Attributes(name string) (Attributes, error) {
	n, ok := f[name]
	if !ok {
		return Attributes{}, &fs.PathError{Op: "statx", Path: name, Err: fs.ErrNotExist}
	}
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	if n.attrErr != nil {
		return Attributes{}, &fs.PathError{Op: "statx", Path: name, Err: n.attrErr}
	}
	return n.attrs, nil
}

func dir(children ...string) *fakeNode {
	return &fakeNode{mode: fs.ModeDir | 0o755, children: children}
}

func file(size uint64) *fakeNode {
	return &fakeNode{mode: 0o644, attrs: Attributes{Regular: true, Size: size}}
}
