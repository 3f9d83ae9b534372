package service

import (
	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/validator"
)

type ClassCount struct {
	Class *data.HighlightClass `json:"class"`
	Count int                  `json:"count"`
}

// ChapterStats summarises the highlights of one chapter. ByClass lists every
// class, including those without highlights. Highlights honours the class
// filter; Total does not.
type ChapterStats struct {
	NotebookID string            `json:"notebook_id"`
	ChapterID  string            `json:"chapter_id"`
	Total      int               `json:"total"`
	ByClass    []ClassCount      `json:"by_class"`
	ClassID    string            `json:"class_id,omitempty"`
	Highlights []*data.Highlight `json:"highlights"`
}

type StatsService struct {
	classModel     data.HighlightClassModel
	highlightModel data.HighlightModel
}

func NewStatsService(classModel data.HighlightClassModel, highlightModel data.HighlightModel) *StatsService {
	return &StatsService{
		classModel:     classModel,
		highlightModel: highlightModel,
	}
}

func (s *StatsService) ChapterStats(notebookID, chapterID, classID string) (*ChapterStats, *validator.Validator, error) {
	v := validator.New()
	if ValidateChapterScope(v, notebookID, chapterID); !v.Valid() {
		return nil, v, nil
	}

	classes, err := s.classModel.GetAll()
	if err != nil {
		return nil, nil, err
	}

	highlights, err := s.highlightModel.GetByChapter(&data.ChapterFilters{
		NotebookID: notebookID,
		ChapterID:  chapterID,
	})
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[string]int, len(classes))
	for _, h := range highlights {
		counts[h.ClassID]++
	}

	stats := &ChapterStats{
		NotebookID: notebookID,
		ChapterID:  chapterID,
		Total:      len(highlights),
		ByClass:    make([]ClassCount, 0, len(classes)),
		ClassID:    classID,
		Highlights: highlights,
	}

	known := false
	for _, c := range classes {
		stats.ByClass = append(stats.ByClass, ClassCount{Class: c, Count: counts[c.ID]})
		known = known || c.ID == classID
	}

	if classID != "" {
		if !known {
			v.AddError("class_id", "does not exist")
			return nil, v, nil
		}

		filtered := []*data.Highlight{}
		for _, h := range highlights {
			if h.ClassID == classID {
				filtered = append(filtered, h)
			}
		}
		stats.Highlights = filtered
	}

	return stats, nil, nil
}
