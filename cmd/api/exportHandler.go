package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/service"
)

type ExportHandler struct {
	app     *application
	service *service.ExportService
}

func NewExportHandler(app *application, service *service.ExportService) *ExportHandler {
	return &ExportHandler{
		app:     app,
		service: service,
	}
}

func (h *ExportHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/v1/notebooks/:notebook_id/chapters/:chapter_id/export", h.app.generalRateLimit(h.Export))
}

// @Summary Export a chapter
// @Description Paint the chapter's highlights onto freshly rendered content, upload it with the highlight records and return a presigned download URL
// @Tags export
// @Produce json
// @Param notebook_id path string true "Notebook ID"
// @Param chapter_id path string true "Chapter ID"
// @Success 201 {object} object{export=service.ExportResult}
// @Failure 404 {object} object{error=string}
// @Failure 503 {object} object{error=string} "Export storage not configured"
// @Router /v1/notebooks/{notebook_id}/chapters/{chapter_id}/export [post]
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	notebookID, chapterID, err := h.app.readChapterParams(r)
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	result, v, err := h.service.Export(r.Context(), notebookID, chapterID)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportDisabled):
			h.app.serviceUnavailableResponse(w, r, err)
		case errors.Is(err, service.ErrContentNotFound):
			h.app.notFoundResponse(w, r)
		default:
			h.app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = h.app.writeJSON(w, http.StatusCreated, envelope{"export": result}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}
