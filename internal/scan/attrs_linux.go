//go:build linux

package scan

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Attributes are the per-file values recorded in the inventory.
type Attributes struct {
	Regular  bool
	Size     uint64
	Created  time.Time
	Modified time.Time
}

func readAttributes(path string) (Attributes, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return lstatAttributes(path)
	}
	if err != nil {
		return Attributes{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	modified := time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec))
	created := modified
	// Not every filesystem records birth time.
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}

	return Attributes{
		Regular:  uint32(stx.Mode)&unix.S_IFMT == unix.S_IFREG,
		Size:     stx.Size,
		Created:  created,
		Modified: modified,
	}, nil
}

func lstatAttributes(path string) (Attributes, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Attributes{}, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}
	modified := time.Unix(int64(st.Mtim.Sec), int64(st.Mtim.Nsec))
	return Attributes{
		Regular:  st.Mode&unix.S_IFMT == unix.S_IFREG,
		Size:     uint64(st.Size),
		Created:  modified,
		Modified: modified,
	}, nil
}
