package highlight

import (
	"errors"

	"studyhall/highlighter/internal/data"
)

// RestoreResult counts what a restoration pass did with each highlight.
type RestoreResult struct {
	Restored     int `json:"restored"`
	AlreadyShown int `json:"already_shown"`
	Missed       int `json:"missed"`
	UnknownClass int `json:"unknown_class"`
	Failed       int `json:"failed"`
}

// Restore paints every highlight of the chapter on s, in insertion order.
//
// Each highlight goes to the first text node that contains its text, even if
// the text occurs more than once or the content changed since it was
// captured. Text spread over several nodes is never found. Highlights whose
// marker is already on the surface are left alone, so running Restore twice
// paints nothing new.
func (h *Highlighter) Restore(s Surface, notebookID, chapterID string) (RestoreResult, error) {
	var result RestoreResult

	highlights, err := h.highlights.GetByChapter(&data.ChapterFilters{
		NotebookID: notebookID,
		ChapterID:  chapterID,
	})
	if err != nil {
		return result, err
	}

	styles := map[string]Style{}

	for _, hl := range highlights {
		style, ok := styles[hl.ClassID]
		if !ok {
			class, err := h.classes.Get(hl.ClassID)
			if err != nil {
				if !errors.Is(err, data.ErrRecordNotFound) {
					return result, err
				}
				result.UnknownClass++
				continue
			}
			style = StyleOf(class)
			styles[hl.ClassID] = style
		}

		span, found := s.FindText(hl.Text)
		if !found {
			result.Missed++
			continue
		}

		if s.HasMarker(hl.ID) {
			result.AlreadyShown++
			continue
		}

		mark, err := s.PaintRange(span, style)
		if err != nil {
			h.logger.Warn("failed to restore highlight", "highlight_id", hl.ID, "error", err)
			result.Failed++
			continue
		}
		mark.SetID(hl.ID)
		result.Restored++
	}

	return result, nil
}
