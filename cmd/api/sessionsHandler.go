package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/service"
)

type SessionHandler struct {
	app     *application
	service *service.WorkspaceService
}

func NewSessionHandler(app *application, service *service.WorkspaceService) *SessionHandler {
	return &SessionHandler{
		app:     app,
		service: service,
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/v1/sessions", h.app.generalRateLimit(h.Open))
	router.HandlerFunc(http.MethodGet, "/v1/sessions/:id", h.app.generalRateLimit(h.Get))
	router.HandlerFunc(http.MethodDelete, "/v1/sessions/:id", h.app.generalRateLimit(h.Close))
	router.HandlerFunc(http.MethodPut, "/v1/sessions/:id/mode", h.app.generalRateLimit(h.SetMode))
	router.HandlerFunc(http.MethodPost, "/v1/sessions/:id/selections", h.app.sessionRateLimit(h.Select))
	router.HandlerFunc(http.MethodPost, "/v1/sessions/:id/reload", h.app.generalRateLimit(h.Reload))
	router.HandlerFunc(http.MethodDelete, "/v1/sessions/:id/markers/:highlight_id", h.app.generalRateLimit(h.RemoveMarker))
}

func (h *SessionHandler) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrContentNotFound),
		errors.Is(err, service.ErrHighlightNotFound):
		h.app.notFoundResponse(w, r)
	case errors.Is(err, service.ErrSessionClosed):
		h.app.goneResponse(w, r, err)
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
		h.app.logger.Debug("request cancelled", "uri", r.URL.RequestURI())
	default:
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Open a session
// @Description Render a chapter into a new session and paint its stored highlights back onto it
// @Tags sessions
// @Accept json
// @Produce json
// @Param input body object{notebook_id=string,chapter_id=string} true "Chapter to open"
// @Success 201 {object} object{session=service.SessionView}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Router /v1/sessions [post]
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NotebookID string `json:"notebook_id"`
		ChapterID  string `json:"chapter_id"`
	}

	err := h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	view, v, err := h.service.Open(r.Context(), input.NotebookID, input.ChapterID)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/v1/sessions/"+view.ID)

	err = h.app.writeJSON(w, http.StatusCreated, envelope{"session": view}, headers)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	view, err := h.service.Get(id)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"session": view}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Close a session
// @Description Close a session and cancel whatever it still had scheduled
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "Closed"
// @Failure 404 {object} object{error=string}
// @Router /v1/sessions/{id} [delete]
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	err = h.service.Close(id)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Switch highlight mode
// @Description Turn highlight mode on or off and optionally change the selected class. An empty class_id clears the selection.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param input body object{highlight_mode=bool,class_id=string} true "Mode and class"
// @Success 200 {object} object{session=service.SessionView}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Router /v1/sessions/{id}/mode [put]
func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	var input struct {
		HighlightMode bool    `json:"highlight_mode"`
		ClassID       *string `json:"class_id"`
	}

	err = h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	view, v, err := h.service.SetMode(id, input.HighlightMode, input.ClassID)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"session": view}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Select and capture text
// @Description Place a selection on the session's content, either by text or by boundaries, and capture it as a highlight of the selected class. Rejected captures come back as 422 with the reason.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param input body service.SelectionInput true "Selection"
// @Success 201 {object} object{highlight=data.Highlight}
// @Failure 404 {object} object{error=string}
// @Failure 410 {object} object{error=string} "Session closed while capturing"
// @Failure 422 {object} object{error=map[string]string}
// @Failure 429 {object} object{error=string}
// @Router /v1/sessions/{id}/selections [post]
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	var input service.SelectionInput

	err = h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	highlight, v, err := h.service.Select(r.Context(), id, input)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusCreated, envelope{"highlight": highlight}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Reload session content
// @Description Render the chapter again and restore its highlights onto the fresh content
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{session=service.SessionView}
// @Failure 404 {object} object{error=string}
// @Router /v1/sessions/{id}/reload [post]
func (h *SessionHandler) Reload(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	view, err := h.service.Reload(r.Context(), id)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"session": view}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Remove a painted highlight
// @Description Unpaint a marker from the session and delete its record, like double-clicking it
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param highlight_id path string true "Highlight ID"
// @Success 200 {object} object{session=service.SessionView}
// @Failure 404 {object} object{error=string}
// @Router /v1/sessions/{id}/markers/{highlight_id} [delete]
func (h *SessionHandler) RemoveMarker(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	highlightID, err := h.app.readStringParam(r, "highlight_id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	view, err := h.service.RemoveMarker(id, highlightID)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"session": view}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}
