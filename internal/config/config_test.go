package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirlist.env")
	content := `# dirlist settings
DIRLIST_WORKERS=3
DIRLIST_OUTPUT=/var/reports
DIRLIST_TIME_LAYOUT="2006-01-02 15:04"
DIRLIST_UTC=true
DIRLIST_INDEX=1
DIRLIST_RETENTION=0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/var/reports", cfg.OutputDir)
	assert.Equal(t, "2006-01-02 15:04", cfg.TimeLayout)
	assert.True(t, cfg.UTC)
	assert.True(t, cfg.Index)
	assert.Equal(t, 0, cfg.Retention)
	assert.False(t, cfg.Verbose)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"workers", "DIRLIST_WORKERS=zero\n"},
		{"negative workers", "DIRLIST_WORKERS=-2\n"},
		{"utc", "DIRLIST_UTC=maybe\n"},
		{"retention", "DIRLIST_RETENTION=-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.env")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
