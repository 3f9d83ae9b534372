package highlight

import (
	"errors"
	"fmt"

	"studyhall/highlighter/internal/data"
)

// Scope is where captured highlights belong and how they are captured.
type Scope struct {
	NotebookID    string
	ChapterID     string
	HighlightMode bool
	ClassID       string
}

// Capture turns the current selection on s into a highlight: it paints the
// selection, stores the record, tags the marker with the record id and
// clears the selection.
func (h *Highlighter) Capture(s Surface, scope Scope) (*data.Highlight, error) {
	if !scope.HighlightMode {
		return nil, fmt.Errorf("%w: highlight mode is off", ErrNotCaptured)
	}
	if scope.ClassID == "" {
		return nil, fmt.Errorf("%w: no highlight class selected", ErrNotCaptured)
	}

	span, err := s.CaptureSelection()
	if err != nil {
		return nil, err
	}

	class, err := h.classes.Get(scope.ClassID)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: highlight class %q does not exist", ErrNotCaptured, scope.ClassID)
		}
		return nil, err
	}

	mark, err := s.PaintRange(span, StyleOf(class))
	if err != nil {
		h.logger.Error("failed to paint selection", "text", span.Text, "error", err)
		return nil, err
	}

	highlight := &data.Highlight{
		Text:              span.Text,
		ClassID:           class.ID,
		NotebookID:        scope.NotebookID,
		ChapterID:         scope.ChapterID,
		StartOffset:       span.StartOffset,
		EndOffset:         span.EndOffset,
		ContainerSelector: span.ContainerSelector,
	}

	if err := h.highlights.Insert(highlight); err != nil {
		mark.Unpaint()
		return nil, err
	}

	mark.SetID(highlight.ID)
	s.ClearSelection()

	h.logger.Info("highlight captured", "highlight_id", highlight.ID, "class_id", class.ID)
	return highlight, nil
}
