// Package highlight turns selections into stored highlights, paints them as
// <mark> elements and puts them back after content is rendered again.
package highlight

import (
	"errors"
	"log/slog"

	"studyhall/highlighter/internal/data"
)

var ErrNotCaptured = errors.New("selection not captured")

type Highlighter struct {
	classes    data.HighlightClassModel
	highlights data.HighlightModel
	logger     *slog.Logger
}

func New(models data.Models, logger *slog.Logger) *Highlighter {
	return &Highlighter{
		classes:    models.HighlightClasses,
		highlights: models.Highlights,
		logger:     logger,
	}
}

// Remove unpaints the marker of id and deletes the highlight record. A
// marker that is not on the surface does not stop the record from going.
// An unknown id fails with data.ErrRecordNotFound and leaves the surface
// untouched.
func (h *Highlighter) Remove(s Surface, id string) error {
	if _, err := h.highlights.Get(id); err != nil {
		return err
	}

	err := s.UnpaintRange(id)
	if err != nil && !errors.Is(err, ErrMarkerNotFound) {
		return err
	}

	return h.highlights.Delete(id)
}

// Prune unpaints markers whose highlight no longer exists and returns how
// many it removed.
func (h *Highlighter) Prune(s Surface) (int, error) {
	pruned := 0
	for _, id := range s.MarkerIDs() {
		_, err := h.highlights.Get(id)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, data.ErrRecordNotFound):
			return pruned, err
		}

		if err := s.UnpaintRange(id); err != nil && !errors.Is(err, ErrMarkerNotFound) {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
