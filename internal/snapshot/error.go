package snapshot

import "errors"

var (
	// ErrNotDirectory is returned when the scan root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrLocked is returned when another run holds the output directory lock.
	ErrLocked = errors.New("another scan is in progress")
)
