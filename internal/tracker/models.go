package tracker

import "time"

// Subject is the identity row for one tracked subject. Name is stored
// normalized (trimmed, lowercased); TotalMinutes is the running all-time
// focus total kept in sync by the daily-stat increment path.
type Subject struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TotalMinutes int       `json:"total_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}

// TimerEntry accumulates focus minutes for one subject on one local
// calendar day. Unique per (subject, date); the upsert in AddTime is what
// enforces that, not the storage layer.
type TimerEntry struct {
	ID           int64     `json:"id"`
	Subject      string    `json:"subject"`
	Date         string    `json:"date"` // YYYY-MM-DD, local calendar day
	TotalMinutes int       `json:"total_minutes"`
	LastUpdated  time.Time `json:"last_updated"`
}

// HiddenSubject marks a subject as suppressed from active listings while
// its history stays on disk.
type HiddenSubject struct {
	ID       int64     `json:"id"`
	Subject  string    `json:"subject"`
	HiddenAt time.Time `json:"hidden_at"`
}

// SessionRecord is one timed work interval. Times are epoch milliseconds
// of the local wall clock. DurationMinutes and PausedSeconds are transient
// until completion: progress snapshots overwrite them wholesale.
type SessionRecord struct {
	ID              int64  `json:"id"`
	SubjectName     string `json:"subject_name"`
	SubjectID       int64  `json:"subject_id,omitempty"`
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	PausedSeconds   int    `json:"paused_seconds,omitempty"`
}

// Completed reports whether the session has been finalized.
func (s SessionRecord) Completed() bool { return s.EndTime != 0 }

// DailyStat holds the derived per-day, per-subject totals. TimeInSubject
// only ever changes through the increment API, which also keeps the
// subject's all-time total consistent.
type DailyStat struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	Subject       string `json:"subject"`
	TimeInSubject int    `json:"time_in_subject"`
	BreakMinutes  int    `json:"break_minutes"`
	PauseMinutes  int    `json:"pause_minutes"`
}

// DailyAggregate is the per-date rollup across all subjects in a range.
type DailyAggregate struct {
	Date         string
	TotalMinutes int
	Subjects     []string
}
