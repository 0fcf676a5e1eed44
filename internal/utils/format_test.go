package utils

import (
	"testing"
	"time"
)

func TestTimeOrDash(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "-"},
		{"utc", time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC), "2026-10-14 09:30:05"},
		{"offset", time.Date(2026, 10, 14, 11, 30, 5, 0, time.FixedZone("CEST", 2*3600)), "2026-10-14 09:30:05"},
	}

	for _, tt := range tests {
		if got := TimeOrDash(tt.in, DateTimeSec); got != tt.want {
			t.Errorf("%s: TimeOrDash = %q, want %q", tt.name, got, tt.want)
		}
	}
}
