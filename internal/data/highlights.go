package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type HighlightModel interface {
	Insert(highlight *Highlight) error
	Get(id string) (*Highlight, error)
	GetAll(filters Filters) ([]*Highlight, Metadata, error)
	GetByChapter(filter *ChapterFilters) ([]*Highlight, error)
	Delete(id string) error
}

// Highlight is a captured text span. StartOffset and EndOffset are relative
// to the originating text node and ContainerSelector is only a locational
// hint; Text is what restoration searches for.
type Highlight struct {
	ID                string    `json:"id"`
	Text              string    `json:"text"`
	ClassID           string    `json:"class_id"`
	NotebookID        string    `json:"notebook_id"`
	ChapterID         string    `json:"chapter_id"`
	StartOffset       int       `json:"start_offset"`
	EndOffset         int       `json:"end_offset"`
	ContainerSelector string    `json:"container_selector"`
	CreatedAt         time.Time `json:"created_at"`
}

func newHighlightID() string {
	return "highlight-" + uuid.New().String()
}

type highlightModel struct {
	DB *sql.DB
}

func NewHighlightModel(db *sql.DB) *highlightModel {
	return &highlightModel{
		DB: db,
	}
}

// Insert generates the ID and CreatedAt of the provided highlight and stores it.
// Returns ErrUnknownHighlightClass when ClassID does not reference a class.
func (m highlightModel) Insert(highlight *Highlight) error {
	query := `
		INSERT INTO highlights
			(id, text, class_id, notebook_id, chapter_id, start_offset, end_offset, container_selector)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	highlight.ID = newHighlightID()

	args := []any{
		highlight.ID,
		highlight.Text,
		highlight.ClassID,
		highlight.NotebookID,
		highlight.ChapterID,
		highlight.StartOffset,
		highlight.EndOffset,
		highlight.ContainerSelector,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&highlight.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrUnknownHighlightClass
		}
		return err
	}

	return nil
}

func (m highlightModel) Get(id string) (*Highlight, error) {
	query := `
		SELECT id, text, class_id, notebook_id, chapter_id, start_offset, end_offset, container_selector, created_at
		FROM highlights
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var h Highlight
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&h.ID,
		&h.Text,
		&h.ClassID,
		&h.NotebookID,
		&h.ChapterID,
		&h.StartOffset,
		&h.EndOffset,
		&h.ContainerSelector,
		&h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &h, nil
}

// GetAll pages through every highlight in insertion order.
func (m highlightModel) GetAll(filters Filters) ([]*Highlight, Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, text, class_id, notebook_id, chapter_id, start_offset, end_offset, container_selector, created_at
		FROM highlights
		ORDER BY seq
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, filters.limit(), filters.offset())
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	highlights := []*Highlight{}

	for rows.Next() {
		var h Highlight
		err := rows.Scan(
			&totalRecords,
			&h.ID,
			&h.Text,
			&h.ClassID,
			&h.NotebookID,
			&h.ChapterID,
			&h.StartOffset,
			&h.EndOffset,
			&h.ContainerSelector,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		highlights = append(highlights, &h)
	}

	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	return highlights, calculateMetadata(totalRecords, filters.Page, filters.PageSize), nil
}

// GetByChapter returns the highlights of one (notebook, chapter) pair in
// insertion order.
func (m highlightModel) GetByChapter(filter *ChapterFilters) ([]*Highlight, error) {
	query := `
		SELECT id, text, class_id, notebook_id, chapter_id, start_offset, end_offset, container_selector, created_at
		FROM highlights
		WHERE notebook_id = $1
		AND chapter_id = $2
		AND ($3 = '' OR class_id = $3)
		ORDER BY seq`

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, filter.NotebookID, filter.ChapterID, filter.ClassID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	highlights := []*Highlight{}

	for rows.Next() {
		var h Highlight
		err := rows.Scan(
			&h.ID,
			&h.Text,
			&h.ClassID,
			&h.NotebookID,
			&h.ChapterID,
			&h.StartOffset,
			&h.EndOffset,
			&h.ContainerSelector,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		highlights = append(highlights, &h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return highlights, nil
}

// Delete removes a highlight.
// Returns ErrRecordNotFound if the highlight doesn't exist
func (m highlightModel) Delete(id string) error {
	query := `
		DELETE FROM highlights
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected < 1 {
		return ErrRecordNotFound
	}

	return nil
}
