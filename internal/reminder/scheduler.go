package reminder

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/kaandel/studylog/internal/timeutil"
)

// Notifier delivers a fired reminder to the user. The desktop notification
// layer lives outside this core; tests and the CLI provide their own.
type Notifier interface {
	Show(title, body string)
}

// DefaultPollInterval is how often the scheduler checks for due reminders
// when the caller does not configure one.
const DefaultPollInterval = 5 * time.Second

// Scheduler polls the reminders table and fires everything that has come
// due, deleting each reminder as it fires. Ticks run sequentially on one
// goroutine, so a slow tick delays rather than overlaps the next.
type Scheduler struct {
	svc      *Service
	notifier Notifier
	interval time.Duration
}

// NewScheduler wires a scheduler over svc. interval <= 0 selects the
// default.
func NewScheduler(svc *Service, notifier Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{svc: svc, notifier: notifier, interval: interval}
}

// Run polls until ctx is canceled, releasing its ticker on the way out.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.tick(time.Now()); err != nil {
				log.Printf("reminder tick: %v", err)
			}
		}
	}
}

// tick fires every reminder due at or before now (ascending by timestamp,
// insertion order on ties). The due set is removed in one whole-table
// transform and delivered only after that write commits: a reminder can
// never fire twice, and a slow notifier never holds the table lock against
// concurrent adds and removals.
func (s *Scheduler) tick(now time.Time) error {
	cutoff := FlexMillis(timeutil.EpochMillis(now))

	var due []Reminder
	err := s.svc.table.Mutate(func(rows []Reminder) ([]Reminder, error) {
		var remaining []Reminder
		for _, r := range rows {
			if r.Timestamp <= cutoff {
				due = append(due, r)
			} else {
				remaining = append(remaining, r)
			}
		}
		if len(due) == 0 {
			return rows, nil
		}
		return remaining, nil
	})
	if err != nil || len(due) == 0 {
		return err
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Timestamp != due[j].Timestamp {
			return due[i].Timestamp < due[j].Timestamp
		}
		return due[i].ID < due[j].ID
	})
	for _, r := range due {
		s.notifier.Show(r.Title, r.Body)
	}
	return nil
}
