package tracker

import (
	"errors"
	"testing"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(t.TempDir())
}

// ============================================================
// AddTime
// ============================================================

func TestAddTimeAccumulates(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.AddTime("math", "2026-08-24", 30); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddTime("math", "2026-08-24", 15); err != nil {
		t.Fatal(err)
	}

	totals, err := tr.SubjectTotals("", "")
	if err != nil {
		t.Fatal(err)
	}
	if totals["math"] != 45 {
		t.Fatalf("expected 45 minutes, got %d", totals["math"])
	}
}

func TestAddTimeNormalizesSubject(t *testing.T) {
	tr := newTestTracker(t)

	tr.AddTime("Math", "2026-08-24", 30)
	tr.AddTime(" math ", "2026-08-24", 15)
	tr.AddTime("MATH", "2026-08-24", 5)

	totals, err := tr.SubjectTotals("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected one subject, got %v", totals)
	}
	if totals["math"] != 50 {
		t.Fatalf("expected 50 minutes under one key, got %d", totals["math"])
	}
}

func TestAddTimeSeparateDays(t *testing.T) {
	tr := newTestTracker(t)

	tr.AddTime("math", "2026-08-23", 30)
	tr.AddTime("math", "2026-08-24", 20)

	entries, err := tr.Entries("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected one entry per day, got %d", len(entries))
	}
}

func TestAddTimeNegativeFloorsAtZero(t *testing.T) {
	tr := newTestTracker(t)

	tr.AddTime("math", "2026-08-24", 30)
	if err := tr.AddTime("math", "2026-08-24", -50); err != nil {
		t.Fatal(err)
	}

	totals, _ := tr.SubjectTotals("", "")
	if totals["math"] != 0 {
		t.Fatalf("expected total floored at 0, got %d", totals["math"])
	}
}

func TestAddTimeEmptySubject(t *testing.T) {
	tr := newTestTracker(t)
	if err := tr.AddTime("   ", "2026-08-24", 30); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}

func TestAddTimeBadDate(t *testing.T) {
	tr := newTestTracker(t)
	for _, date := range []string{"", "2026-8-24", "24-08-2026", "2026-08-2x", "2026-13-99", "2026-02-30"} {
		if err := tr.AddTime("math", date, 30); !errors.Is(err, ErrBadDate) {
			t.Errorf("expected ErrBadDate for %q, got %v", date, err)
		}
	}
}

// ============================================================
// Subject listing and hiding
// ============================================================

func TestSubjectsSorted(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTime("physics", "2026-08-24", 10)
	tr.AddTime("algebra", "2026-08-24", 10)
	tr.AddTime("chemistry", "2026-08-24", 10)

	subjects, err := tr.Subjects()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"algebra", "chemistry", "physics"}
	if len(subjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, subjects)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, subjects)
		}
	}
}

func TestHideSubject(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTime("math", "2026-08-24", 30)
	tr.AddTime("physics", "2026-08-24", 20)

	changed, err := tr.HideSubject("math")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected hide to report a change")
	}

	subjects, _ := tr.Subjects()
	if len(subjects) != 1 || subjects[0] != "physics" {
		t.Fatalf("expected hidden subject excluded, got %v", subjects)
	}

	// History is untouched.
	totals, _ := tr.SubjectTotals("", "")
	if totals["math"] != 30 {
		t.Fatalf("expected hidden subject history intact, got %v", totals)
	}
}

func TestHideSubjectTwice(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTime("math", "2026-08-24", 30)

	tr.HideSubject("math")
	changed, err := tr.HideSubject("math")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("expected second hide to be a no-op")
	}
}

func TestUnhideSubject(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTime("math", "2026-08-24", 30)
	tr.HideSubject("math")

	changed, err := tr.UnhideSubject("math")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected unhide to report a change")
	}
	subjects, _ := tr.Subjects()
	if len(subjects) != 1 || subjects[0] != "math" {
		t.Fatalf("expected subject restored, got %v", subjects)
	}
}

func TestUnhideSubjectNotHidden(t *testing.T) {
	tr := newTestTracker(t)
	changed, err := tr.UnhideSubject("math")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("expected no-op for a subject that was never hidden")
	}
}

// ============================================================
// DeleteSubject
// ============================================================

func TestDeleteSubject(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTime("math", "2026-08-23", 30)
	tr.AddTime("math", "2026-08-24", 20)
	tr.AddTime("physics", "2026-08-24", 10)
	tr.HideSubject("math")

	deleted, err := tr.DeleteSubject("math")
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected delete to report a change")
	}

	entries, _ := tr.Entries("", "")
	for _, e := range entries {
		if e.Subject == "math" {
			t.Fatalf("expected math entries gone, found %+v", e)
		}
	}
	// Deleting also clears the hidden marker, so re-adding starts fresh
	// and visible.
	tr.AddTime("math", "2026-08-24", 5)
	subjects, _ := tr.Subjects()
	found := false
	for _, s := range subjects {
		if s == "math" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected re-added subject to be visible")
	}
}

func TestDeleteSubjectMissing(t *testing.T) {
	tr := newTestTracker(t)
	deleted, err := tr.DeleteSubject("nothing")
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("expected no-op for unknown subject")
	}
}

// ============================================================
// Range queries and aggregates
// ============================================================

func seedWeek(t *testing.T, tr *Tracker) {
	t.Helper()
	tr.AddTime("math", "2026-08-20", 30)
	tr.AddTime("math", "2026-08-22", 20)
	tr.AddTime("physics", "2026-08-22", 10)
	tr.AddTime("math", "2026-08-25", 40)
}

func TestSubjectTotalsRange(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	totals, err := tr.SubjectTotals("2026-08-21", "2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if totals["math"] != 20 || totals["physics"] != 10 {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestSubjectTotalsInclusiveBounds(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	totals, err := tr.SubjectTotals("2026-08-20", "2026-08-25")
	if err != nil {
		t.Fatal(err)
	}
	if totals["math"] != 90 {
		t.Fatalf("expected bounds inclusive, got %v", totals)
	}
}

func TestSubjectTotalsOpenBounds(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	totals, err := tr.SubjectTotals("", "")
	if err != nil {
		t.Fatal(err)
	}
	if totals["math"] != 90 || totals["physics"] != 10 {
		t.Fatalf("expected all-time totals, got %v", totals)
	}
}

func TestDailyAggregates(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	days, err := tr.DailyAggregates("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Date != "2026-08-20" || days[1].Date != "2026-08-22" || days[2].Date != "2026-08-25" {
		t.Fatalf("expected date order, got %+v", days)
	}
	if days[1].TotalMinutes != 30 {
		t.Fatalf("expected 30 minutes on the shared day, got %d", days[1].TotalMinutes)
	}
	if len(days[1].Subjects) != 2 || days[1].Subjects[0] != "math" || days[1].Subjects[1] != "physics" {
		t.Fatalf("expected sorted subject set, got %v", days[1].Subjects)
	}
}

func TestAggregationConsistency(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	// Per-subject and per-day rollups must sum to the same grand total.
	totals, err := tr.SubjectTotals("", "")
	if err != nil {
		t.Fatal(err)
	}
	bySubject := 0
	for _, m := range totals {
		bySubject += m
	}

	days, err := tr.DailyAggregates("", "")
	if err != nil {
		t.Fatal(err)
	}
	byDay := 0
	for _, d := range days {
		byDay += d.TotalMinutes
	}

	if bySubject != byDay {
		t.Fatalf("rollups disagree: %d by subject, %d by day", bySubject, byDay)
	}
}

func TestEntriesOrdered(t *testing.T) {
	tr := newTestTracker(t)
	seedWeek(t, tr)

	entries, err := tr.Entries("", "")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Date > cur.Date || (prev.Date == cur.Date && prev.Subject > cur.Subject) {
			t.Fatalf("entries out of order at %d: %+v", i, entries)
		}
	}
}

// ============================================================
// Migrations
// ============================================================

func TestMigrateNormalizeSubjectsMerges(t *testing.T) {
	tr := newTestTracker(t)

	// Seed pre-normalization rows directly, as old data files had them.
	err := tr.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		rows, _ = tr.entries.InsertInto(rows, TimerEntry{Subject: "Math", Date: "2026-08-24", TotalMinutes: 30})
		rows, _ = tr.entries.InsertInto(rows, TimerEntry{Subject: "math ", Date: "2026-08-24", TotalMinutes: 15})
		rows, _ = tr.entries.InsertInto(rows, TimerEntry{Subject: "MATH", Date: "2026-08-23", TotalMinutes: 5})
		return rows, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.migrateNormalizeSubjects(); err != nil {
		t.Fatal(err)
	}

	entries, _ := tr.Entries("", "")
	if len(entries) != 2 {
		t.Fatalf("expected duplicate (subject, date) rows merged, got %+v", entries)
	}
	totals, _ := tr.SubjectTotals("", "")
	if totals["math"] != 50 {
		t.Fatalf("expected merged total 50, got %v", totals)
	}
}

func TestMigrateClampNegatives(t *testing.T) {
	tr := newTestTracker(t)

	err := tr.entries.Mutate(func(rows []TimerEntry) ([]TimerEntry, error) {
		rows, _ = tr.entries.InsertInto(rows, TimerEntry{Subject: "math", Date: "2026-08-24", TotalMinutes: -10})
		return rows, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.migrateClampNegatives(); err != nil {
		t.Fatal(err)
	}
	totals, _ := tr.SubjectTotals("", "")
	if totals["math"] != 0 {
		t.Fatalf("expected negative total clamped to 0, got %v", totals)
	}
}
