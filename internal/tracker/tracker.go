// Package tracker is the time-aggregation engine: subject/date focus
// upserts, range queries, the hide/unhide/delete subject lifecycle, and
// the session state machine that feeds the daily stats.
package tracker

import (
	"errors"
	"strings"

	"github.com/kaandel/studylog/internal/store"
	"github.com/kaandel/studylog/internal/timeutil"
)

var (
	// ErrEmptySubject rejects blank subject names before any state changes.
	ErrEmptySubject = errors.New("tracker: empty subject name")
	// ErrBadDate rejects date keys that are not zero-padded YYYY-MM-DD.
	ErrBadDate = errors.New("tracker: date must be YYYY-MM-DD")
	// ErrSessionNotFound is returned when completing an unknown session id.
	// Callers report it; nothing about it is fatal.
	ErrSessionNotFound = errors.New("tracker: session not found")
	// ErrSessionCompleted is returned when completing a session twice.
	// Completion is terminal; re-folding the duration would double-count
	// the daily stats.
	ErrSessionCompleted = errors.New("tracker: session already completed")
)

// Tracker owns the five tables of the time-tracking core. Construct one at
// startup, after migrations, and pass it by reference.
type Tracker struct {
	subjects *store.Table[Subject]
	entries  *store.Table[TimerEntry]
	hidden   *store.Table[HiddenSubject]
	sessions *store.Table[SessionRecord]
	daily    *store.Table[DailyStat]
}

// New opens the tracker tables under dir.
func New(dir string) *Tracker {
	return &Tracker{
		subjects: store.NewTable(dir, "subjects", func(s *Subject) *int64 { return &s.ID }),
		entries:  store.NewTable(dir, "timer_entries", func(e *TimerEntry) *int64 { return &e.ID }),
		hidden:   store.NewTable(dir, "hidden_subjects", func(h *HiddenSubject) *int64 { return &h.ID }),
		sessions: store.NewTable(dir, "sessions", func(s *SessionRecord) *int64 { return &s.ID }),
		daily:    store.NewTable(dir, "daily_stats", func(d *DailyStat) *int64 { return &d.ID }),
	}
}

// Normalize is the canonical subject key: trimmed and lowercased.
// "Math", " math " and "MATH" are one subject.
func Normalize(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

func validDate(date string) bool {
	// Length check keeps keys zero-padded; the parse rejects impossible
	// calendar dates like 2026-13-99.
	if len(date) != 10 {
		return false
	}
	_, ok := timeutil.ParseLocalDate(date)
	return ok
}

// inRange reports whether date falls in [start, end]. Empty bounds mean
// all time. Lexicographic comparison is correct because date keys are
// zero-padded.
func inRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
