package scan

import (
	"errors"
	"io/fs"
	"os"
)

type fsProvider interface {
	Lstat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readable(name string) bool
	Attributes(name string) (Attributes, error)
}

// OS is the fsProvider backed by the real filesystem.
type OS struct{}

// Lstat wraps around [os.Lstat].
func (OS) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// ReadDir wraps around [os.ReadDir].
func (OS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Readable reports whether the process may read name.
func (OS) Readable(name string) bool {
	return readable(name)
}

// Attributes reads size and timestamps without following symlinks.
func (OS) Attributes(name string) (Attributes, error) {
	return readAttributes(name)
}

// errMessage strips the op/path prefix of a *fs.PathError since diagnostics
// already name the path.
func errMessage(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
