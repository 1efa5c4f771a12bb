package utils

import (
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"time"
)

// ClockToMinutes converts a zero padded HH:mm string to minutes since midnight.
func ClockToMinutes(clock string) (int, error) {
	if len(clock) != len(constvars.TimeLayout) {
		return 0, fmt.Errorf("clock %q is not in HH:mm format", clock)
	}
	t, err := time.Parse(constvars.TimeLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half open windows [aStart,aEnd) and [bStart,bEnd) intersect.
// HH:mm strings are zero padded so they order lexicographically.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

func ParseDate(date string) (time.Time, error) {
	return time.Parse(constvars.DateLayout, date)
}

// IsPastDate reports whether date is strictly before the calendar day of now
// in now's location.
func IsPastDate(date string, now time.Time) (bool, error) {
	day, err := time.ParseInLocation(constvars.DateLayout, date, now.Location())
	if err != nil {
		return false, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today), nil
}
