package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScanConfigFlagPrecedence(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "dirlist.env")
	content := "DIRLIST_WORKERS=3\nDIRLIST_UTC=true\nDIRLIST_RETENTION=2\nDIRLIST_OUTPUT=/from/file\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	tests := []struct {
		name      string
		args      []string
		workers   int
		utc       bool
		retention int
		output    string
		wantErr   bool
	}{
		{name: "file values", args: nil, workers: 3, utc: true, retention: 2, output: "/from/file"},
		{name: "workers flag wins", args: []string{"--workers", "5"}, workers: 5, utc: true, retention: 2, output: "/from/file"},
		{name: "explicit false wins", args: []string{"--utc=false"}, workers: 3, utc: false, retention: 2, output: "/from/file"},
		{name: "default-valued flag wins", args: []string{"--retention", "5", "-o", "/from/flag"}, workers: 3, utc: true, retention: 5, output: "/from/flag"},
		{name: "zero workers rejected", args: []string{"--workers", "0"}, wantErr: true},
		{name: "negative workers rejected", args: []string{"--workers=-1"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "scan"}
			bindScanFlags(cmd)
			require.NoError(t, cmd.Flags().Parse(append([]string{"--env", envFile}, tt.args...)))

			cfg, err := loadScanConfig(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.workers, cfg.Workers)
			assert.Equal(t, tt.utc, cfg.UTC)
			assert.Equal(t, tt.retention, cfg.Retention)
			assert.Equal(t, tt.output, cfg.OutputDir)
		})
	}
}
