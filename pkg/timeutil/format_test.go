package timeutil

import (
	"testing"
	"time"
)

func TestDayBucket(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int64
	}{
		{"epoch", time.Unix(0, 0), 0},
		{"last second of day zero", time.Unix(SecondsPerDay-1, 0), 0},
		{"start of day one", time.Unix(SecondsPerDay, 0), 1},
		{"day 100", time.Unix(100*SecondsPerDay+3600, 0), 100},
		{"before epoch", time.Unix(-1, 0), -1},
		{"zone does not matter", time.Unix(SecondsPerDay, 0).In(time.FixedZone("JST", 9*3600)), 1},
	}
	for _, tt := range tests {
		if got := DayBucket(tt.in); got != tt.want {
			t.Errorf("%s: DayBucket = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFormatDay(t *testing.T) {
	if got := FormatDay(0); got != "1970-01-01" {
		t.Errorf("FormatDay(0) = %q", got)
	}
	if got := FormatDay(19723); got != "2024-01-01" {
		t.Errorf("FormatDay(19723) = %q", got)
	}
}

func TestUntilRollover(t *testing.T) {
	now := time.Unix(SecondsPerDay-90, 0)
	if got := UntilRollover(now); got != 90*time.Second {
		t.Errorf("UntilRollover = %v, want 90s", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{12 * time.Minute, "12m"},
		{3*time.Hour + 20*time.Minute, "3h 20m"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.in); got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
