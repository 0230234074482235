package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Table is a named collection of records of one type, persisted as a JSON
// Lines file. Record identifiers live in an int64 field reached through the
// id accessor; they are assigned as max(existing)+1 and never reused.
//
// Every mutation is a whole-table read-modify-write, serialized by a
// per-table mutex so that concurrent callers can never interleave their
// cycles and lose an update or mint a duplicate id.
type Table[T any] struct {
	name string
	path string
	id   func(*T) *int64

	mu sync.Mutex
}

// NewTable opens (without reading) the table file <dir>/<name>.jsonl.
// id must return a pointer to the record's identifier field.
func NewTable[T any](dir, name string, id func(*T) *int64) *Table[T] {
	return &Table[T]{
		name: name,
		path: filepath.Join(dir, name+".jsonl"),
		id:   id,
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// Path returns the primary file path backing the table.
func (t *Table[T]) Path() string { return t.path }

// Load reads every row from disk. Rows that fail to parse are skipped:
// partial recovery beats refusing to start over one corrupt line.
func (t *Table[T]) Load() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadLocked()
}

// Save replaces the table contents with rows, crash-safely.
func (t *Table[T]) Save(rows []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveLocked(rows)
}

// Select returns the rows matching filter. A nil filter matches everything.
func (t *Table[T]) Select(filter func(T) bool) ([]T, error) {
	rows, err := t.Load()
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return rows, nil
	}
	var out []T
	for _, r := range rows {
		if filter(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SelectSorted returns matching rows ordered by less, truncated to limit
// when limit > 0.
func (t *Table[T]) SelectSorted(filter func(T) bool, less func(a, b T) bool, limit int) ([]T, error) {
	rows, err := t.Select(filter)
	if err != nil {
		return nil, err
	}
	if less != nil {
		sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Insert appends row with a freshly assigned id and returns the id.
func (t *Table[T]) Insert(row T) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.loadLocked()
	if err != nil {
		return 0, err
	}
	next := int64(1)
	for i := range rows {
		if cur := *t.id(&rows[i]); cur >= next {
			next = cur + 1
		}
	}
	*t.id(&row) = next
	rows = append(rows, row)
	if err := t.saveLocked(rows); err != nil {
		return 0, err
	}
	return next, nil
}

// Update applies mutate to the row with the given id. It reports false
// when no such row exists; that is not an error.
func (t *Table[T]) Update(id int64, mutate func(*T)) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.loadLocked()
	if err != nil {
		return false, err
	}
	for i := range rows {
		if *t.id(&rows[i]) == id {
			mutate(&rows[i])
			*t.id(&rows[i]) = id
			return true, t.saveLocked(rows)
		}
	}
	return false, nil
}

// Remove deletes the row with the given id, reporting whether it existed.
func (t *Table[T]) Remove(id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.loadLocked()
	if err != nil {
		return false, err
	}
	for i := range rows {
		if *t.id(&rows[i]) == id {
			rows = append(rows[:i], rows[i+1:]...)
			return true, t.saveLocked(rows)
		}
	}
	return false, nil
}

// Mutate runs fn over the full row set and persists its result, all under
// the table lock. Upserts and multi-row rewrites go through here so the
// find and the write cannot be split by a concurrent caller.
func (t *Table[T]) Mutate(fn func(rows []T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.loadLocked()
	if err != nil {
		return err
	}
	out, err := fn(rows)
	if err != nil {
		return err
	}
	return t.saveLocked(out)
}

// NextID returns the id Insert would assign, used when a caller needs the
// id inside a Mutate transform.
func nextID[T any](t *Table[T], rows []T) int64 {
	next := int64(1)
	for i := range rows {
		if cur := *t.id(&rows[i]); cur >= next {
			next = cur + 1
		}
	}
	return next
}

// InsertInto assigns a fresh id to row and appends it to rows. For use
// inside Mutate transforms.
func (t *Table[T]) InsertInto(rows []T, row T) ([]T, int64) {
	id := nextID(t, rows)
	*t.id(&row) = id
	return append(rows, row), id
}

func (t *Table[T]) loadLocked() ([]T, error) {
	f, err := os.Open(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", t.name, err)
	}
	defer f.Close()

	var rows []T
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			// Malformed row: drop it, keep the rest.
			continue
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table %s: %w", t.name, err)
	}
	return rows, nil
}

func (t *Table[T]) saveLocked(rows []T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			return fmt.Errorf("encode row in %s: %w", t.name, err)
		}
	}
	if err := atomicWrite(t.path, buf.Bytes()); err != nil {
		return fmt.Errorf("save table %s: %w", t.name, err)
	}
	return nil
}
