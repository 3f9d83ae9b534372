package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type HighlightClassModel interface {
	Insert(class *HighlightClass) error
	Get(id string) (*HighlightClass, error)
	GetAll() ([]*HighlightClass, error)
	Update(class *HighlightClass) error
	Delete(id string) error
}

// HighlightClass is a named highlight style.
type HighlightClass struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultHighlightClasses are the classes every store starts with.
func DefaultHighlightClasses() []HighlightClass {
	now := time.Now()
	return []HighlightClass{
		{ID: "yellow", Name: "중요", Color: "#92400e", BackgroundColor: "#fef3c7", CreatedAt: now, UpdatedAt: now},
		{ID: "green", Name: "이해함", Color: "#065f46", BackgroundColor: "#d1fae5", CreatedAt: now, UpdatedAt: now},
		{ID: "red", Name: "모르는 부분", Color: "#991b1b", BackgroundColor: "#fee2e2", CreatedAt: now, UpdatedAt: now},
		{ID: "blue", Name: "복습 필요", Color: "#1e40af", BackgroundColor: "#dbeafe", CreatedAt: now, UpdatedAt: now},
	}
}

func newHighlightClassID() string {
	return "custom-" + uuid.New().String()
}

type highlightClassModel struct {
	DB *sql.DB
}

func NewHighlightClassModel(db *sql.DB) *highlightClassModel {
	return &highlightClassModel{DB: db}
}

// Insert generates the ID and timestamps of class and stores it.
func (m highlightClassModel) Insert(class *HighlightClass) error {
	query := `
		INSERT INTO highlight_classes
			(id, name, color, background_color)
		VALUES
			($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	class.ID = newHighlightClassID()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.DB.QueryRowContext(ctx, query, class.ID, class.Name, class.Color, class.BackgroundColor).
		Scan(&class.CreatedAt, &class.UpdatedAt)
}

func (m highlightClassModel) Get(id string) (*HighlightClass, error) {
	query := `
		SELECT id, name, color, background_color, created_at, updated_at
		FROM highlight_classes
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var class HighlightClass
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Color,
		&class.BackgroundColor,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &class, nil
}

func (m highlightClassModel) GetAll() ([]*HighlightClass, error) {
	query := `
		SELECT id, name, color, background_color, created_at, updated_at
		FROM highlight_classes
		ORDER BY seq`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*HighlightClass{}
	for rows.Next() {
		var class HighlightClass
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Color,
			&class.BackgroundColor,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// Update replaces name and colors and bumps UpdatedAt.
// Returns ErrRecordNotFound if the class doesn't exist
func (m highlightClassModel) Update(class *HighlightClass) error {
	query := `
		UPDATE highlight_classes
		SET
			name = $1,
			color = $2,
			background_color = $3,
			updated_at = now()
		WHERE id = $4
		RETURNING created_at, updated_at`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, class.Name, class.Color, class.BackgroundColor, class.ID).
		Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		return err
	}

	return nil
}

// Delete removes a class and, through the foreign key, its highlights.
// Returns ErrLastHighlightClass when id is the only class left and
// ErrRecordNotFound when it doesn't exist.
func (m highlightClassModel) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// concurrent deletes must not both see two classes left
	_, err = tx.ExecContext(ctx, `LOCK TABLE highlight_classes IN SHARE ROW EXCLUSIVE MODE`)
	if err != nil {
		return err
	}

	var exists bool
	var total int
	err = tx.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM highlight_classes WHERE id = $1),
			(SELECT count(*) FROM highlight_classes)`, id).Scan(&exists, &total)
	if err != nil {
		return err
	}

	if !exists {
		return ErrRecordNotFound
	}
	if total <= 1 {
		return ErrLastHighlightClass
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM highlight_classes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
