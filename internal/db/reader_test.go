package db

import (
	"context"
	"testing"
	"time"

	"github.com/michaelscutari/dirlist/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecordsSorting(t *testing.T) {
	database := openTestDB(t)

	t0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	records := []entry.Record{
		{Name: "b.txt", Path: "/r/b.txt", Created: t0, Modified: t0, Size: 50},
		{Name: "a.txt", Path: "/r/z/a.txt", Created: t0, Modified: t0.Add(time.Hour), Size: 200},
		{Name: "c.txt", Path: "/r/c.txt", Created: t0, Modified: t0.Add(time.Minute), Size: 10},
	}
	require.NoError(t, NewIngester(database, 0).Records(context.Background(), records))

	names := func(rs []entry.Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}

	tests := []struct {
		sort     string
		limit    int
		expected []string
	}{
		{"", 0, []string{"b.txt", "a.txt", "c.txt"}},
		{"size", 0, []string{"a.txt", "b.txt", "c.txt"}},
		{"name", 0, []string{"a.txt", "b.txt", "c.txt"}},
		{"mtime", 0, []string{"a.txt", "c.txt", "b.txt"}},
		{"path", 0, []string{"b.txt", "c.txt", "a.txt"}},
		{"size", 1, []string{"a.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got, err := LoadRecords(database, tt.sort, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(got))
		})
	}
}
