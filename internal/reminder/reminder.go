// Package reminder stores one-shot due reminders and the polling scheduler
// that fires them. A reminder is consumed exactly when it fires; if the
// process is down when one comes due, it fires on the first tick after the
// next start, not retroactively per missed interval.
package reminder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaandel/studylog/internal/store"
	"github.com/kaandel/studylog/internal/timeutil"
)

// ErrBadTimestamp rejects an unparseable due time on explicit Add.
var ErrBadTimestamp = errors.New("reminder: unparseable timestamp")

// FlexMillis is epoch milliseconds that unmarshals from either a JSON
// number or any timestamp string older data files used. A value that
// parses as neither fails decoding, which makes the store drop the row.
type FlexMillis int64

func (m *FlexMillis) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*m = FlexMillis(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ms, ok := timeutil.Normalize(timeutil.Raw(s))
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	*m = FlexMillis(ms)
	return nil
}

// Reminder is a one-shot, time-triggered notification request. ID orders
// insertion (and breaks timestamp ties); UID is the handle owners use to
// delete a reminder explicitly.
type Reminder struct {
	ID        int64      `json:"id"`
	UID       string     `json:"uid"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Timestamp FlexMillis `json:"timestamp"`
}

// Service owns the reminders table.
type Service struct {
	table *store.Table[Reminder]
}

// NewService opens the reminders table under dir.
func NewService(dir string) *Service {
	return &Service{
		table: store.NewTable(dir, "reminders", func(r *Reminder) *int64 { return &r.ID }),
	}
}

// Add creates a reminder due at the given time. The timestamp is validated
// before anything is written.
func (s *Service) Add(title, body string, at timeutil.Input) (*Reminder, error) {
	if title == "" {
		return nil, errors.New("reminder: empty title")
	}
	ms, ok := timeutil.Normalize(at)
	if !ok {
		return nil, ErrBadTimestamp
	}

	rec := Reminder{
		UID:       uuid.NewString(),
		Title:     title,
		Body:      body,
		Timestamp: FlexMillis(ms),
	}
	id, err := s.table.Insert(rec)
	if err != nil {
		return nil, fmt.Errorf("add reminder: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// List returns pending reminders ordered by due time, insertion order on
// ties.
func (s *Service) List() ([]Reminder, error) {
	return s.table.SelectSorted(nil, func(a, b Reminder) bool {
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.ID < b.ID
	}, 0)
}

// Remove deletes a reminder by its UID, reporting whether it existed.
func (s *Service) Remove(uid string) (bool, error) {
	rows, err := s.table.Select(func(r Reminder) bool { return r.UID == uid })
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return s.table.Remove(rows[0].ID)
}

// Migrations rewrites the reminders file once so rows with timestamps the
// current decoder rejects are purged for good instead of being re-skipped
// on every load.
func (s *Service) Migrations() []store.Migration {
	return []store.Migration{
		{
			Version: 3,
			Name:    "purge unparseable reminders",
			Apply: func() error {
				return s.table.Mutate(func(rows []Reminder) ([]Reminder, error) {
					return rows, nil
				})
			},
		},
	}
}
