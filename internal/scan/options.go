package scan

import (
	"runtime"
	"time"
)

// DefaultTimeLayout is a short date-time layout (month/day/year, 12-hour clock).
const DefaultTimeLayout = "1/2/06, 3:04 PM"

// ScanOptions configures the scanning behavior.
type ScanOptions struct {
	// Workers is the number of concurrent attribute readers.
	Workers int

	// TimeLayout is the Go time layout used for creation and modification times.
	TimeLayout string

	// Location pins timestamps to a zone. Nil means the process local zone,
	// resolved each time a timestamp is formatted.
	Location *time.Location
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *ScanOptions {
	return &ScanOptions{
		Workers:    runtime.NumCPU(),
		TimeLayout: DefaultTimeLayout,
	}
}

// WithWorkers sets the number of workers.
func (o *ScanOptions) WithWorkers(n int) *ScanOptions {
	o.Workers = n
	return o
}

// WithTimeLayout sets the timestamp layout.
func (o *ScanOptions) WithTimeLayout(layout string) *ScanOptions {
	o.TimeLayout = layout
	return o
}

// WithLocation pins timestamps to loc.
func (o *ScanOptions) WithLocation(loc *time.Location) *ScanOptions {
	o.Location = loc
	return o
}

func (o *ScanOptions) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// Formatter returns the timestamp formatter described by the options.
func (o *ScanOptions) Formatter() TimeFormatter {
	return TimeFormatter{Layout: o.TimeLayout, Location: o.Location}
}
