package service

import (
	"errors"
	"log/slog"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/validator"
)

type HighlightService struct {
	highlightModel data.HighlightModel
	logger         *slog.Logger
	onDelete       []func(ids ...string)
}

func NewHighlightService(highlightModel data.HighlightModel, logger *slog.Logger) *HighlightService {
	return &HighlightService{
		highlightModel: highlightModel,
		logger:         logger,
	}
}

// InsertHighlight validates and stores a highlight; highlight is populated
// in place.
// OnDelete registers fn to run after highlights have been removed.
func (s *HighlightService) OnDelete(fn func(ids ...string)) {
	s.onDelete = append(s.onDelete, fn)
}

func (s *HighlightService) InsertHighlight(highlight *data.Highlight) (*validator.Validator, error) {
	v := validator.New()
	if ValidateHighlight(v, highlight); !v.Valid() {
		return v, nil
	}

	err := s.highlightModel.Insert(highlight)
	if err != nil {
		if errors.Is(err, data.ErrUnknownHighlightClass) {
			v.AddError("class_id", "does not exist")
			return v, nil
		}
		s.logger.Error("failed to create highlight", "class_id", highlight.ClassID, "error", err)
		return nil, err
	}

	return nil, nil
}

func (s *HighlightService) GetHighlight(id string) (*data.Highlight, error) {
	highlight, err := s.highlightModel.Get(id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, ErrHighlightNotFound
		}
		return nil, err
	}
	return highlight, nil
}

func (s *HighlightService) ListHighlights(filters data.Filters) ([]*data.Highlight, data.Metadata, *validator.Validator, error) {
	v := validator.New()
	if filters.Validate(v); !v.Valid() {
		return nil, data.Metadata{}, v, nil
	}

	highlights, metadata, err := s.highlightModel.GetAll(filters)
	if err != nil {
		return nil, data.Metadata{}, nil, err
	}
	return highlights, metadata, nil, nil
}

// ChapterHighlights returns the highlights of one chapter in insertion
// order, optionally narrowed to one class.
func (s *HighlightService) ChapterHighlights(filter *data.ChapterFilters) ([]*data.Highlight, *validator.Validator, error) {
	v := validator.New()
	if ValidateChapterScope(v, filter.NotebookID, filter.ChapterID); !v.Valid() {
		return nil, v, nil
	}

	highlights, err := s.highlightModel.GetByChapter(filter)
	if err != nil {
		return nil, nil, err
	}
	return highlights, nil, nil
}

func (s *HighlightService) DeleteHighlight(id string) error {
	err := s.highlightModel.Delete(id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return ErrHighlightNotFound
		}
		return err
	}

	for _, fn := range s.onDelete {
		fn(id)
	}
	return nil
}
