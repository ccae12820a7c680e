package scan

import (
	"testing"
	"time"

	"github.com/michaelscutari/dirlist/internal/entry"
	"github.com/stretchr/testify/assert"
)

func TestTimeFormatter(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 15, 4, 0, 0, time.UTC)

	f := TimeFormatter{Location: time.UTC}
	assert.Equal(t, "1/2/24, 3:04 PM", f.Format(ts))

	tokyo := time.FixedZone("JST", 9*60*60)
	f = TimeFormatter{Layout: time.RFC3339, Location: tokyo}
	assert.Equal(t, "2024-01-03T00:04:00+09:00", f.Format(ts))
}

func TestTimeFormatterUsesLocalAtCallTime(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	ts := time.Date(2024, time.January, 2, 15, 4, 0, 0, time.UTC)
	f := DefaultOptions().Formatter()

	time.Local = time.UTC
	assert.Equal(t, "1/2/24, 3:04 PM", f.Format(ts))

	time.Local = time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "1/2/24, 10:04 AM", f.Format(ts))
}

func TestRecordLine(t *testing.T) {
	ts := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)
	r := entry.Record{
		Name:     "a.txt",
		Path:     "/data/a.txt",
		Created:  ts,
		Modified: ts.Add(time.Minute),
		Size:     10,
	}
	f := TimeFormatter{Location: time.UTC}
	assert.Equal(t, "a.txt|/data/a.txt|12/31/23, 11:59 PM|1/1/24, 12:00 AM|10", r.Line(f.Format))
}
