package service

import (
	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/validator"
)

// ValidateHighlightClass checks the user editable fields of a class.
func ValidateHighlightClass(v *validator.Validator, class *data.HighlightClass) {
	v.Check(validator.NotBlank(class.Name), "name", "must be provided")
	v.Check(validator.MaxChars(class.Name, 50), "name", "must not be more than 50 characters long")

	v.Check(class.Color != "", "color", "must be provided")
	v.Check(validator.Matches(class.Color, validator.ColorRX), "color", "must be a hex color such as #92400e")

	v.Check(class.BackgroundColor != "", "background_color", "must be provided")
	v.Check(validator.Matches(class.BackgroundColor, validator.ColorRX), "background_color", "must be a hex color such as #fef3c7")
}

// ValidateHighlight checks a highlight before it is stored.
func ValidateHighlight(v *validator.Validator, h *data.Highlight) {
	v.Check(validator.NotBlank(h.Text), "text", "must be provided")
	v.Check(validator.MaxChars(h.Text, 5000), "text", "must not be more than 5000 characters long")
	v.Check(h.ClassID != "", "class_id", "must be provided")

	ValidateChapterScope(v, h.NotebookID, h.ChapterID)

	v.Check(h.StartOffset >= 0, "start_offset", "must not be negative")
	v.Check(h.EndOffset >= 0, "end_offset", "must not be negative")
	v.Check(h.StartOffset <= h.EndOffset, "end_offset", "must not be before start_offset")
	v.Check(validator.MaxChars(h.ContainerSelector, 1000), "container_selector", "must not be more than 1000 characters long")
}

// ValidateChapterScope checks the (notebook, chapter) scoping keys.
func ValidateChapterScope(v *validator.Validator, notebookID, chapterID string) {
	v.Check(validator.NotBlank(notebookID), "notebook_id", "must be provided")
	v.Check(validator.NotBlank(chapterID), "chapter_id", "must be provided")
}
