package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/service"
)

type NotebookHandler struct {
	app     *application
	service *service.NotebookService
}

func NewNotebookHandler(app *application, service *service.NotebookService) *NotebookHandler {
	return &NotebookHandler{
		app:     app,
		service: service,
	}
}

func (h *NotebookHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/notebooks", h.app.generalRateLimit(h.List))
	router.HandlerFunc(http.MethodGet, "/v1/notebooks/:notebook_id/chapters", h.app.generalRateLimit(h.Chapters))
}

// @Summary List notebooks
// @Description Notebooks known to the content backend
// @Tags notebooks
// @Produce json
// @Success 200 {object} object{notebooks=[]content.Notebook}
// @Failure 500 {object} object{error=string}
// @Router /v1/notebooks [get]
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	notebooks, err := h.service.Notebooks(r.Context())
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"notebooks": notebooks}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary List chapters
// @Tags notebooks
// @Produce json
// @Param notebook_id path string true "Notebook ID"
// @Success 200 {object} object{chapters=[]content.Chapter}
// @Failure 404 {object} object{error=string}
// @Router /v1/notebooks/{notebook_id}/chapters [get]
func (h *NotebookHandler) Chapters(w http.ResponseWriter, r *http.Request) {
	notebookID, err := h.app.readStringParam(r, "notebook_id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	chapters, err := h.service.Chapters(r.Context(), notebookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			h.app.notFoundResponse(w, r)
		default:
			h.app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"chapters": chapters}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}
