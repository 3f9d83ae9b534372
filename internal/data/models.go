package data

import (
	"database/sql"
	"errors"
)

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrLastHighlightClass    = errors.New("at least one highlight class must exist")
	ErrUnknownHighlightClass = errors.New("highlight class does not exist")
)

// ChapterFilters scopes highlight queries to one (notebook, chapter) pair.
// ClassID optionally narrows the result to a single class.
type ChapterFilters struct {
	NotebookID string
	ChapterID  string
	ClassID    string
}

type Models struct {
	HighlightClasses HighlightClassModel
	Highlights       HighlightModel
}

// NewModels returns Postgres backed models.
func NewModels(db *sql.DB) Models {
	return Models{
		HighlightClasses: NewHighlightClassModel(db),
		Highlights:       NewHighlightModel(db),
	}
}

// NewMemoryModels returns models sharing one in-memory store seeded with the
// default highlight classes.
func NewMemoryModels() Models {
	store := NewMemoryStore()
	return Models{
		HighlightClasses: store.Classes(),
		Highlights:       store.Highlights(),
	}
}
