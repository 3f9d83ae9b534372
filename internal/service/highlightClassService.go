package service

import (
	"errors"
	"log/slog"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/validator"
)

type HighlightClassService struct {
	classModel data.HighlightClassModel
	logger     *slog.Logger
	onDelete   []func(classID string)
}

func NewHighlightClassService(classModel data.HighlightClassModel, logger *slog.Logger) *HighlightClassService {
	return &HighlightClassService{
		classModel: classModel,
		logger:     logger,
	}
}

// OnDelete registers fn to run after a class has been removed.
func (s *HighlightClassService) OnDelete(fn func(classID string)) {
	s.onDelete = append(s.onDelete, fn)
}

func (s *HighlightClassService) List() ([]*data.HighlightClass, error) {
	return s.classModel.GetAll()
}

func (s *HighlightClassService) Get(id string) (*data.HighlightClass, error) {
	class, err := s.classModel.Get(id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, ErrHighlightClassNotFound
		}
		return nil, err
	}
	return class, nil
}

// Create validates and stores a new class; class is populated in place.
func (s *HighlightClassService) Create(class *data.HighlightClass) (*validator.Validator, error) {
	v := validator.New()
	if ValidateHighlightClass(v, class); !v.Valid() {
		return v, nil
	}

	if err := s.classModel.Insert(class); err != nil {
		s.logger.Error("failed to create highlight class", "name", class.Name, "error", err)
		return nil, err
	}

	s.logger.Info("highlight class created", "class_id", class.ID)
	return nil, nil
}

// Update replaces name and colors of an existing class.
func (s *HighlightClassService) Update(class *data.HighlightClass) (*validator.Validator, error) {
	v := validator.New()
	if ValidateHighlightClass(v, class); !v.Valid() {
		return v, nil
	}

	err := s.classModel.Update(class)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, ErrHighlightClassNotFound
		}
		return nil, err
	}

	return nil, nil
}

// Delete removes a class together with its highlights. The last remaining
// class can't be deleted.
func (s *HighlightClassService) Delete(id string) error {
	err := s.classModel.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			return ErrHighlightClassNotFound
		case errors.Is(err, data.ErrLastHighlightClass):
			return ErrLastHighlightClass
		default:
			return err
		}
	}

	s.logger.Info("highlight class deleted", "class_id", id)
	for _, fn := range s.onDelete {
		fn(id)
	}
	return nil
}
