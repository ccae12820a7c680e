package pathutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned by Sanitize for input that cannot name a path.
var ErrInvalidPath = errors.New("invalid path")

// fallbackBaseName is used when a root has no name component (e.g. "/").
const fallbackBaseName = "output"

// Normalize returns a canonical filesystem path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}

// Sanitize trims user input, rejects NUL bytes and returns an absolute,
// normalized path.
func Sanitize(input string) (string, error) {
	p := strings.TrimSpace(input)
	if p == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: contains null bytes", ErrInvalidPath)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPath, p, err)
	}
	return Normalize(abs), nil
}

// BaseName returns the last element of root, or "output" when root has none.
func BaseName(root string) string {
	base := filepath.Base(Normalize(root))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return fallbackBaseName
	}
	return base
}

// ReportFileName returns the report name for a base folder name. Names that
// already end in ".txt" are kept unchanged.
func ReportFileName(base string) string {
	if strings.HasSuffix(base, ".txt") {
		return base
	}
	return base + ".txt"
}

// ErrorFileName returns the diagnostic log name for a base folder name.
func ErrorFileName(base string) string {
	return fmt.Sprintf("errors_parsing_%s.txt", base)
}
