// Package timeutil provides day-bucket arithmetic and time formatting
// for wotd.
//
// Word rotation is keyed on the day bucket: the number of whole 24-hour
// periods since the Unix epoch. Buckets advance at 00:00 UTC regardless
// of the local zone, so every process on every machine agrees on "today".
package timeutil

import (
	"fmt"
	"time"
)

// SecondsPerDay is the width of one day bucket.
const SecondsPerDay = 86400

// DayBucket returns floor(unixSeconds / 86400) for t.
func DayBucket(t time.Time) int64 {
	secs := t.Unix()
	day := secs / SecondsPerDay
	// Go division truncates toward zero; pre-epoch times need floor.
	if secs%SecondsPerDay < 0 {
		day--
	}
	return day
}

// Today returns the day bucket for the current wall-clock time.
func Today() int64 {
	return DayBucket(time.Now())
}

// BucketStart returns the UTC instant at which the given day bucket begins.
func BucketStart(day int64) time.Time {
	return time.Unix(day*SecondsPerDay, 0).UTC()
}

// FormatDay formats a day bucket as a calendar date.
// Format: "2006-01-02"
func FormatDay(day int64) string {
	return BucketStart(day).Format("2006-01-02")
}

// UntilRollover returns how long remains until the next day bucket starts.
func UntilRollover(now time.Time) time.Duration {
	next := BucketStart(DayBucket(now) + 1)
	return next.Sub(now)
}

// FormatCountdown formats a duration as a short countdown string.
// Examples: "45s", "12m", "3h 20m"
func FormatCountdown(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) - h*60
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
