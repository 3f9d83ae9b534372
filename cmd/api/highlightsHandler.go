package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/service"
)

type HighlightHandler struct {
	app     *application
	service *service.HighlightService
	stats   *service.StatsService
}

func NewHighlightHandler(app *application, service *service.HighlightService, stats *service.StatsService) *HighlightHandler {
	return &HighlightHandler{
		app:     app,
		service: service,
		stats:   stats,
	}
}

func (h *HighlightHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/highlights", h.app.generalRateLimit(h.List))
	router.HandlerFunc(http.MethodPost, "/v1/highlights", h.app.generalRateLimit(h.Insert))
	router.HandlerFunc(http.MethodGet, "/v1/highlights/:id", h.app.generalRateLimit(h.Get))
	router.HandlerFunc(http.MethodDelete, "/v1/highlights/:id", h.app.generalRateLimit(h.Delete))

	router.HandlerFunc(http.MethodGet, "/v1/notebooks/:notebook_id/chapters/:chapter_id/highlights", h.app.generalRateLimit(h.ListChapter))
	router.HandlerFunc(http.MethodGet, "/v1/notebooks/:notebook_id/chapters/:chapter_id/stats", h.app.generalRateLimit(h.Stats))
}

func (h *HighlightHandler) handleHighlightError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrHighlightNotFound):
		h.app.notFoundResponse(w, r)
	default:
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Create a highlight
// @Description Store a highlight record directly, without painting it on a session
// @Tags highlights
// @Accept json
// @Produce json
// @Param highlight body object{text=string,class_id=string,notebook_id=string,chapter_id=string,start_offset=int,end_offset=int,container_selector=string} true "Highlight data"
// @Success 201 {object} object{highlight=data.Highlight}
// @Failure 400 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Failure 500 {object} object{error=string}
// @Router /v1/highlights [post]
func (h *HighlightHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text              string `json:"text"`
		ClassID           string `json:"class_id"`
		NotebookID        string `json:"notebook_id"`
		ChapterID         string `json:"chapter_id"`
		StartOffset       int    `json:"start_offset"`
		EndOffset         int    `json:"end_offset"`
		ContainerSelector string `json:"container_selector"`
	}

	err := h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	highlight := &data.Highlight{
		Text:              input.Text,
		ClassID:           input.ClassID,
		NotebookID:        input.NotebookID,
		ChapterID:         input.ChapterID,
		StartOffset:       input.StartOffset,
		EndOffset:         input.EndOffset,
		ContainerSelector: input.ContainerSelector,
	}

	v, err := h.service.InsertHighlight(highlight)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleHighlightError(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/v1/highlights/"+highlight.ID)

	err = h.app.writeJSON(w, http.StatusCreated, envelope{"highlight": highlight}, headers)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary List highlights
// @Description Page through every stored highlight in insertion order
// @Tags highlights
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} object{highlights=[]data.Highlight,metadata=data.Metadata}
// @Failure 400 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Router /v1/highlights [get]
func (h *HighlightHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := h.app.readPaginationParams(r)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	highlights, metadata, v, err := h.service.ListHighlights(filters)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlights": highlights, "metadata": metadata}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

func (h *HighlightHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	highlight, err := h.service.GetHighlight(id)
	if err != nil {
		h.handleHighlightError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlight": highlight}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a highlight
// @Description Delete a highlight record. Painted markers are left alone; use the session marker endpoint to unpaint.
// @Tags highlights
// @Param id path string true "Highlight ID"
// @Success 204 "Deleted"
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /v1/highlights/{id} [delete]
func (h *HighlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	err = h.service.DeleteHighlight(id)
	if err != nil {
		h.handleHighlightError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Highlights of a chapter
// @Description List the highlights of one chapter, optionally narrowed to one class
// @Tags highlights
// @Produce json
// @Param notebook_id path string true "Notebook ID"
// @Param chapter_id path string true "Chapter ID"
// @Param class_id query string false "Class ID"
// @Success 200 {object} object{highlights=[]data.Highlight}
// @Failure 422 {object} object{error=map[string]string}
// @Router /v1/notebooks/{notebook_id}/chapters/{chapter_id}/highlights [get]
func (h *HighlightHandler) ListChapter(w http.ResponseWriter, r *http.Request) {
	notebookID, chapterID, err := h.app.readChapterParams(r)
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	highlights, v, err := h.service.ChapterHighlights(&data.ChapterFilters{
		NotebookID: notebookID,
		ChapterID:  chapterID,
		ClassID:    r.URL.Query().Get("class_id"),
	})
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlights": highlights}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Highlight statistics of a chapter
// @Description Total highlights and a per-class breakdown including empty classes
// @Tags highlights
// @Produce json
// @Param notebook_id path string true "Notebook ID"
// @Param chapter_id path string true "Chapter ID"
// @Param class_id query string false "Only list highlights of this class"
// @Success 200 {object} object{stats=service.ChapterStats}
// @Failure 422 {object} object{error=map[string]string}
// @Router /v1/notebooks/{notebook_id}/chapters/{chapter_id}/stats [get]
func (h *HighlightHandler) Stats(w http.ResponseWriter, r *http.Request) {
	notebookID, chapterID, err := h.app.readChapterParams(r)
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	stats, v, err := h.stats.ChapterStats(notebookID, chapterID, r.URL.Query().Get("class_id"))
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}
