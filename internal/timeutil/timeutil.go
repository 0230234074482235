// Package timeutil provides the local-calendar-day and epoch conversions
// every other package keys its data on. Dates are always the machine's
// local day, never UTC: timer entries and daily stats are bucketed by what
// the user's wall clock says, so a UTC-based day boundary would misfile
// anything recorded near midnight.
package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// DayFormat is the canonical zero-padded date key. Lexicographic order on
// these strings equals chronological order.
const DayFormat = "2006-01-02"

// DayString returns the local calendar day of t as "YYYY-MM-DD".
func DayString(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// Today returns the current local calendar day.
func Today() string {
	return DayString(time.Now())
}

// EpochMillis converts t to milliseconds since the Unix epoch.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds back to a local time.Time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}

// ParseLocalDate parses a "YYYY-MM-DD" string as midnight local time.
func ParseLocalDate(date string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayFormat, date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseLocalDateTime parses a date plus an optional "HH:MM" or "HH:MM:SS"
// clock string in local time. Out-of-range clock components are clamped
// instead of rejected, so "25:99" becomes 23:59.
func ParseLocalDateTime(date, clock string) (time.Time, bool) {
	day, ok := ParseLocalDate(date)
	if !ok {
		return time.Time{}, false
	}
	if clock == "" {
		return day, true
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	h := clamp(nums[0], 0, 23)
	m := clamp(nums[1], 0, 59)
	s := clamp(nums[2], 0, 59)

	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, time.Local), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
