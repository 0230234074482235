package tracker

import (
	"fmt"
	"time"

	"github.com/kaandel/studylog/internal/timeutil"
)

// StartSession creates the subject identity if needed and opens a new
// session with StartTime = now (local wall clock, epoch ms).
func (t *Tracker) StartSession(subject string) (*SessionRecord, error) {
	name := Normalize(subject)
	if name == "" {
		return nil, ErrEmptySubject
	}

	subjectID, err := t.ensureSubject(name)
	if err != nil {
		return nil, err
	}

	rec := SessionRecord{
		SubjectName: name,
		SubjectID:   subjectID,
		StartTime:   timeutil.EpochMillis(time.Now()),
	}
	id, err := t.sessions.Insert(rec)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// UpdateSessionProgress overwrites the session's transient duration and
// paused fields with cumulative values. Callable any number of times
// before completion; reports false for an unknown or completed session.
func (t *Tracker) UpdateSessionProgress(id int64, activeSeconds, pausedSeconds int) (bool, error) {
	updated := false
	err := t.sessions.Mutate(func(rows []SessionRecord) ([]SessionRecord, error) {
		for i := range rows {
			if rows[i].ID == id && !rows[i].Completed() {
				rows[i].DurationMinutes = activeSeconds / 60
				rows[i].PausedSeconds = pausedSeconds
				updated = true
			}
		}
		return rows, nil
	})
	return updated, err
}

// CompleteSession finalizes the session and folds its duration into the
// daily-stat bucket keyed by the local calendar day of its start time.
// Completion is terminal: a second completion of the same id is rejected
// with ErrSessionCompleted before anything is written. Break and pause
// minutes never travel this path; they reach the stats only through
// AddBreakTime/AddPauseTime so the time a session already accounts for is
// not counted twice.
func (t *Tracker) CompleteSession(id int64, durationMinutes, pausedSeconds int) error {
	var completed *SessionRecord
	err := t.sessions.Mutate(func(rows []SessionRecord) ([]SessionRecord, error) {
		for i := range rows {
			if rows[i].ID == id {
				if rows[i].Completed() {
					return rows, ErrSessionCompleted
				}
				rows[i].EndTime = timeutil.EpochMillis(time.Now())
				rows[i].DurationMinutes = durationMinutes
				rows[i].PausedSeconds = pausedSeconds
				rec := rows[i]
				completed = &rec
				return rows, nil
			}
		}
		return rows, ErrSessionNotFound
	})
	if err != nil {
		return err
	}

	day := timeutil.DayString(timeutil.FromMillis(completed.StartTime))
	return t.IncrementDailyStat(day, completed.SubjectName, durationMinutes, 0, 0)
}

// Session returns one session by id, or nil when it does not exist.
func (t *Tracker) Session(id int64) (*SessionRecord, error) {
	rows, err := t.sessions.Select(func(s SessionRecord) bool { return s.ID == id })
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Sessions returns every recorded session, most recent start first.
func (t *Tracker) Sessions() ([]SessionRecord, error) {
	return t.sessions.SelectSorted(nil, func(a, b SessionRecord) bool {
		return a.StartTime > b.StartTime
	}, 0)
}

// IncrementDailyStat adds to the (date, subject) daily bucket, creating it
// on first use. Focus minutes also advance the subject's all-time total,
// keeping the two aggregates consistent by construction. All three deltas
// floor the stored value at zero.
func (t *Tracker) IncrementDailyStat(date, subject string, focusMinutes, breakMinutes, pauseMinutes int) error {
	name := Normalize(subject)
	if name == "" {
		return ErrEmptySubject
	}
	if !validDate(date) {
		return fmt.Errorf("%w: %q", ErrBadDate, date)
	}

	err := t.daily.Mutate(func(rows []DailyStat) ([]DailyStat, error) {
		for i := range rows {
			if rows[i].Date == date && rows[i].Subject == name {
				rows[i].TimeInSubject = floorZero(rows[i].TimeInSubject + focusMinutes)
				rows[i].BreakMinutes = floorZero(rows[i].BreakMinutes + breakMinutes)
				rows[i].PauseMinutes = floorZero(rows[i].PauseMinutes + pauseMinutes)
				return rows, nil
			}
		}
		rows, _ = t.daily.InsertInto(rows, DailyStat{
			Date:          date,
			Subject:       name,
			TimeInSubject: floorZero(focusMinutes),
			BreakMinutes:  floorZero(breakMinutes),
			PauseMinutes:  floorZero(pauseMinutes),
		})
		return rows, nil
	})
	if err != nil {
		return err
	}

	if focusMinutes != 0 {
		return t.subjects.Mutate(func(rows []Subject) ([]Subject, error) {
			for i := range rows {
				if rows[i].Name == name {
					rows[i].TotalMinutes = floorZero(rows[i].TotalMinutes + focusMinutes)
					return rows, nil
				}
			}
			rows, _ = t.subjects.InsertInto(rows, Subject{
				Name:         name,
				TotalMinutes: floorZero(focusMinutes),
				CreatedAt:    time.Now(),
			})
			return rows, nil
		})
	}
	return nil
}

// AddBreakTime records break minutes against the (date, subject) bucket.
func (t *Tracker) AddBreakTime(date, subject string, minutes int) error {
	return t.IncrementDailyStat(date, subject, 0, minutes, 0)
}

// AddPauseTime records paused minutes against the (date, subject) bucket.
func (t *Tracker) AddPauseTime(date, subject string, minutes int) error {
	return t.IncrementDailyStat(date, subject, 0, 0, minutes)
}

// DailyStats returns the stat rows for [start, end], ordered by date then
// subject. Empty bounds mean all time.
func (t *Tracker) DailyStats(start, end string) ([]DailyStat, error) {
	return t.daily.SelectSorted(
		func(d DailyStat) bool { return inRange(d.Date, start, end) },
		func(a, b DailyStat) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Subject < b.Subject
		}, 0)
}

// SubjectTotal returns the all-time focus total for a subject as tracked
// on its identity row.
func (t *Tracker) SubjectTotal(subject string) (int, error) {
	name := Normalize(subject)
	rows, err := t.subjects.Select(func(s Subject) bool { return s.Name == name })
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalMinutes, nil
}

func (t *Tracker) ensureSubject(name string) (int64, error) {
	var id int64
	err := t.subjects.Mutate(func(rows []Subject) ([]Subject, error) {
		for i := range rows {
			if rows[i].Name == name {
				id = rows[i].ID
				return rows, nil
			}
		}
		rows, id = t.subjects.InsertInto(rows, Subject{Name: name, CreatedAt: time.Now()})
		return rows, nil
	})
	return id, err
}
