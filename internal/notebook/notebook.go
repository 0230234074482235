// Package notebook holds the simple persistent state behind the to-do,
// note, and settings views: plain CRUD over their tables.
package notebook

import (
	"errors"
	"time"

	"github.com/kaandel/studylog/internal/store"
)

// ErrEmptyText rejects blank todo text and note titles.
var ErrEmptyText = errors.New("notebook: empty text")

type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Setting struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Notebook owns the todos, notes, and settings tables.
type Notebook struct {
	todos    *store.Table[Todo]
	notes    *store.Table[Note]
	settings *store.Table[Setting]
}

// New opens the notebook tables under dir.
func New(dir string) *Notebook {
	return &Notebook{
		todos:    store.NewTable(dir, "todos", func(t *Todo) *int64 { return &t.ID }),
		notes:    store.NewTable(dir, "notes", func(n *Note) *int64 { return &n.ID }),
		settings: store.NewTable(dir, "settings", func(s *Setting) *int64 { return &s.ID }),
	}
}

// AddTodo appends a todo and returns its id.
func (n *Notebook) AddTodo(text string) (int64, error) {
	if text == "" {
		return 0, ErrEmptyText
	}
	return n.todos.Insert(Todo{Text: text, CreatedAt: time.Now()})
}

// SetTodoDone marks a todo done or not done, reporting whether it exists.
func (n *Notebook) SetTodoDone(id int64, done bool) (bool, error) {
	return n.todos.Update(id, func(t *Todo) { t.Done = done })
}

// RemoveTodo deletes a todo, reporting whether it existed.
func (n *Notebook) RemoveTodo(id int64) (bool, error) {
	return n.todos.Remove(id)
}

// Todos returns all todos, oldest first.
func (n *Notebook) Todos() ([]Todo, error) {
	return n.todos.SelectSorted(nil, func(a, b Todo) bool { return a.ID < b.ID }, 0)
}

// SaveNote creates a note, or replaces the body of the note with the same
// title. Returns the note id.
func (n *Notebook) SaveNote(title, body string) (int64, error) {
	if title == "" {
		return 0, ErrEmptyText
	}
	var id int64
	err := n.notes.Mutate(func(rows []Note) ([]Note, error) {
		for i := range rows {
			if rows[i].Title == title {
				rows[i].Body = body
				rows[i].UpdatedAt = time.Now()
				id = rows[i].ID
				return rows, nil
			}
		}
		rows, id = n.notes.InsertInto(rows, Note{Title: title, Body: body, UpdatedAt: time.Now()})
		return rows, nil
	})
	return id, err
}

// RemoveNote deletes a note, reporting whether it existed.
func (n *Notebook) RemoveNote(id int64) (bool, error) {
	return n.notes.Remove(id)
}

// Notes returns all notes sorted by title.
func (n *Notebook) Notes() ([]Note, error) {
	return n.notes.SelectSorted(nil, func(a, b Note) bool { return a.Title < b.Title }, 0)
}

// GetSetting returns the value for key, or the empty string when unset.
func (n *Notebook) GetSetting(key string) (string, error) {
	rows, err := n.settings.Select(func(s Setting) bool { return s.Key == key })
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Value, nil
}

// SetSetting upserts a key/value pair.
func (n *Notebook) SetSetting(key, value string) error {
	return n.settings.Mutate(func(rows []Setting) ([]Setting, error) {
		for i := range rows {
			if rows[i].Key == key {
				rows[i].Value = value
				return rows, nil
			}
		}
		rows, _ = n.settings.InsertInto(rows, Setting{Key: key, Value: value})
		return rows, nil
	})
}

// Settings returns every setting sorted by key.
func (n *Notebook) Settings() ([]Setting, error) {
	return n.settings.SelectSorted(nil, func(a, b Setting) bool { return a.Key < b.Key }, 0)
}
