package tracker

import (
	"fmt"
	"sort"
	"time"
)

// AddTime adds minutes to the (subject, date) timer entry, creating it on
// first use. The delta may be negative, but the accumulated total never
// drops below zero.
func (t *Tracker) AddTime(subject, date string, minutes int) error {
	name := Normalize(subject)
	if name == "" {
		return ErrEmptySubject
	}
	if !validDate(date) {
		return fmt.Errorf("%w: %q", ErrBadDate, date)
	}

	now := time.Now()
	return t.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		for i := range rows {
			if rows[i].Subject == name && rows[i].Date == date {
				rows[i].TotalMinutes = floorZero(rows[i].TotalMinutes + minutes)
				rows[i].LastUpdated = now
				return rows, nil
			}
		}
		rows, _ = t.entries.InsertInto(rows, TimerEntry{
			Subject:      name,
			Date:         date,
			TotalMinutes: floorZero(minutes),
			LastUpdated:  now,
		})
		return rows, nil
	})
}

// Subjects returns the distinct subjects with timer history, minus any
// that are hidden, sorted alphabetically.
func (t *Tracker) Subjects() ([]string, error) {
	entries, err := t.entries.Load()
	if err != nil {
		return nil, err
	}
	hidden, err := t.hiddenSet()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if seen[e.Subject] || hidden[e.Subject] {
			continue
		}
		seen[e.Subject] = true
		out = append(out, e.Subject)
	}
	sort.Strings(out)
	return out, nil
}

// HideSubject suppresses a subject from active listings. It reports false
// when the subject was already hidden.
func (t *Tracker) HideSubject(subject string) (bool, error) {
	name := Normalize(subject)
	if name == "" {
		return false, ErrEmptySubject
	}
	changed := false
	err := t.hidden.Mutate(func(rows []HiddenSubject) ([]HiddenSubject, error) {
		for i := range rows {
			if rows[i].Subject == name {
				return rows, nil
			}
		}
		rows, _ = t.hidden.InsertInto(rows, HiddenSubject{Subject: name, HiddenAt: time.Now()})
		changed = true
		return rows, nil
	})
	return changed, err
}

// UnhideSubject reverses HideSubject, reporting false when the subject
// was not hidden.
func (t *Tracker) UnhideSubject(subject string) (bool, error) {
	name := Normalize(subject)
	if name == "" {
		return false, ErrEmptySubject
	}
	changed := false
	err := t.hidden.Mutate(func(rows []HiddenSubject) ([]HiddenSubject, error) {
		for i := range rows {
			if rows[i].Subject == name {
				changed = true
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return rows, nil
	})
	return changed, err
}

// DeleteSubject removes every timer entry, hidden marker, and identity row
// for the subject. Irreversible. It reports whether anything was deleted.
func (t *Tracker) DeleteSubject(subject string) (bool, error) {
	name := Normalize(subject)
	if name == "" {
		return false, ErrEmptySubject
	}

	deleted := false
	err := t.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		kept := rows[:0]
		for _, r := range rows {
			if r.Subject == name {
				deleted = true
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return deleted, err
	}

	err = t.hidden.Mutate(func(rows []HiddenSubject) ([]HiddenSubject, error) {
		kept := rows[:0]
		for _, r := range rows {
			if r.Subject == name {
				deleted = true
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return deleted, err
	}

	err = t.subjects.Mutate(func(rows []Subject) ([]Subject, error) {
		kept := rows[:0]
		for _, r := range rows {
			if r.Name == name {
				deleted = true
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	return deleted, err
}

// SubjectTotals sums minutes per subject over entries whose date lies in
// [start, end]. Empty bounds mean all time.
func (t *Tracker) SubjectTotals(start, end string) (map[string]int, error) {
	entries, err := t.entriesInRange(start, end)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int)
	for _, e := range entries {
		totals[e.Subject] += e.TotalMinutes
	}
	return totals, nil
}

// DailyAggregates groups the range by date: total minutes plus the
// distinct subject set, ordered by date.
func (t *Tracker) DailyAggregates(start, end string) ([]DailyAggregate, error) {
	entries, err := t.entriesInRange(start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DailyAggregate)
	for _, e := range entries {
		agg, ok := byDate[e.Date]
		if !ok {
			agg = &DailyAggregate{Date: e.Date}
			byDate[e.Date] = agg
		}
		agg.TotalMinutes += e.TotalMinutes
		found := false
		for _, s := range agg.Subjects {
			if s == e.Subject {
				found = true
				break
			}
		}
		if !found {
			agg.Subjects = append(agg.Subjects, e.Subject)
		}
	}

	out := make([]DailyAggregate, 0, len(byDate))
	for _, agg := range byDate {
		sort.Strings(agg.Subjects)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Entries returns the flat per-entry projection for the range, ordered by
// date then subject.
func (t *Tracker) Entries(start, end string) ([]TimerEntry, error) {
	entries, err := t.entriesInRange(start, end)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Subject < entries[j].Subject
	})
	return entries, nil
}

func (t *Tracker) entriesInRange(start, end string) ([]TimerEntry, error) {
	return t.entries.Select(func(e TimerEntry) bool {
		return inRange(e.Date, start, end)
	})
}

func (t *Tracker) hiddenSet() (map[string]bool, error) {
	rows, err := t.hidden.Load()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(rows))
	for _, h := range rows {
		set[h.Subject] = true
	}
	return set, nil
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
