package utils

import "time"

const DateTimeSec = "2006-01-02 15:04:05"

// TimeOrDash formats a time value in UTC using the given layout, or returns
// "-" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(layout)
}
