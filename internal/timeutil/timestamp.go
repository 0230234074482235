package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// Input is a timestamp in one of the shapes callers actually hand us.
// Reminders in particular arrive as raw epoch numbers, numeric strings,
// local date/time strings, or free-form date text from older data files.
type Input interface {
	normalize() (int64, bool)
}

// Epoch is milliseconds since the Unix epoch.
type Epoch int64

func (e Epoch) normalize() (int64, bool) {
	if e < 0 {
		return 0, false
	}
	return int64(e), true
}

// LocalDateTime is a "YYYY-MM-DD" date with an optional "HH:MM[:SS]" clock,
// interpreted in local time.
type LocalDateTime struct {
	Date  string
	Clock string
}

func (l LocalDateTime) normalize() (int64, bool) {
	t, ok := ParseLocalDateTime(l.Date, l.Clock)
	if !ok {
		return 0, false
	}
	return t.UnixMilli(), true
}

// Raw is an uninterpreted string: a numeric epoch, a local date/time, or
// as a last resort anything the RFC 3339 parser accepts.
type Raw string

func (r Raw) normalize() (int64, bool) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return 0, false
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Epoch(ms).normalize()
	}

	date, clock, _ := strings.Cut(s, " ")
	if t, ok := ParseLocalDateTime(date, clock); ok {
		return t.UnixMilli(), true
	}

	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// Normalize converts any Input to epoch milliseconds. ok is false for
// unparseable input, which callers treat as "drop this record".
func Normalize(in Input) (int64, bool) {
	if in == nil {
		return 0, false
	}
	return in.normalize()
}
