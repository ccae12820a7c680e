//go:build !linux

package scan

import (
	"os"
	"time"
)

// Attributes are the per-file values recorded in the inventory.
type Attributes struct {
	Regular  bool
	Size     uint64
	Created  time.Time
	Modified time.Time
}

// Birth time is not portable outside Linux statx; modification time stands in.
func readAttributes(path string) (Attributes, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		Regular:  info.Mode().IsRegular(),
		Size:     uint64(info.Size()),
		Created:  info.ModTime(),
		Modified: info.ModTime(),
	}, nil
}
