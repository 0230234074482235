package tracker

import "github.com/kaandel/studylog/internal/store"

// Migrations returns the tracker's schema transforms. Each one is safe to
// re-apply: a crash before the version bump just means it runs again on
// the next start.
func (t *Tracker) Migrations() []store.Migration {
	return []store.Migration{
		{
			Version: 1,
			Name:    "normalize subject keys",
			Apply:   t.migrateNormalizeSubjects,
		},
		{
			Version: 2,
			Name:    "clamp negative totals",
			Apply:   t.migrateClampNegatives,
		},
	}
}

// migrateNormalizeSubjects rewrites every subject key to its normalized
// form and merges the rows that collapse onto the same key. Early data
// files stored subjects with whatever casing the user typed.
func (t *Tracker) migrateNormalizeSubjects() error {
	err := t.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		merged := make([]TimerEntry, 0, len(rows))
		index := make(map[[2]string]int)
		for _, r := range rows {
			r.Subject = Normalize(r.Subject)
			key := [2]string{r.Subject, r.Date}
			if i, ok := index[key]; ok {
				merged[i].TotalMinutes += r.TotalMinutes
				if r.LastUpdated.After(merged[i].LastUpdated) {
					merged[i].LastUpdated = r.LastUpdated
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, r)
		}
		return merged, nil
	})
	if err != nil {
		return err
	}

	err = t.hidden.Mutate(func(rows []HiddenSubject) ([]HiddenSubject, error) {
		kept := make([]HiddenSubject, 0, len(rows))
		seen := make(map[string]bool)
		for _, r := range rows {
			r.Subject = Normalize(r.Subject)
			if seen[r.Subject] {
				continue
			}
			seen[r.Subject] = true
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	return t.subjects.Mutate(func(rows []Subject) ([]Subject, error) {
		kept := make([]Subject, 0, len(rows))
		index := make(map[string]int)
		for _, r := range rows {
			r.Name = Normalize(r.Name)
			if i, ok := index[r.Name]; ok {
				kept[i].TotalMinutes += r.TotalMinutes
				continue
			}
			index[r.Name] = len(kept)
			kept = append(kept, r)
		}
		return kept, nil
	})
}

// migrateClampNegatives floors every stored total at zero, matching the
// invariant the increment paths now enforce on write.
func (t *Tracker) migrateClampNegatives() error {
	err := t.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		for i := range rows {
			rows[i].TotalMinutes = floorZero(rows[i].TotalMinutes)
		}
		return rows, nil
	})
	if err != nil {
		return err
	}
	return t.daily.Mutate(func(rows []DailyStat) ([]DailyStat, error) {
		for i := range rows {
			rows[i].TimeInSubject = floorZero(rows[i].TimeInSubject)
			rows[i].BreakMinutes = floorZero(rows[i].BreakMinutes)
			rows[i].PauseMinutes = floorZero(rows[i].PauseMinutes)
		}
		return rows, nil
	})
}
