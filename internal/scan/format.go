package scan

import "time"

// TimeFormatter renders report timestamps.
type TimeFormatter struct {
	Layout   string
	Location *time.Location
}

// Format renders t in the formatter's zone. Without a pinned zone the
// current value of time.Local is used.
func (f TimeFormatter) Format(t time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	layout := f.Layout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.In(loc).Format(layout)
}
