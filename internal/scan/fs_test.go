package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSReadable(t *testing.T) {
	var fsys OS
	assert.True(t, fsys.Readable(t.TempDir()))
	assert.False(t, fsys.Readable(filepath.Join(t.TempDir(), "missing")))
}
