package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/service"
)

type HighlightClassHandler struct {
	app     *application
	service *service.HighlightClassService
}

func NewHighlightClassHandler(app *application, service *service.HighlightClassService) *HighlightClassHandler {
	return &HighlightClassHandler{
		app:     app,
		service: service,
	}
}

func (h *HighlightClassHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/highlight-classes", h.app.generalRateLimit(h.List))
	router.HandlerFunc(http.MethodPost, "/v1/highlight-classes", h.app.generalRateLimit(h.Create))
	router.HandlerFunc(http.MethodGet, "/v1/highlight-classes/:id", h.app.generalRateLimit(h.Get))
	router.HandlerFunc(http.MethodPatch, "/v1/highlight-classes/:id", h.app.generalRateLimit(h.Update))
	router.HandlerFunc(http.MethodDelete, "/v1/highlight-classes/:id", h.app.generalRateLimit(h.Delete))
}

func (h *HighlightClassHandler) handleClassError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrHighlightClassNotFound):
		h.app.notFoundResponse(w, r)
	case errors.Is(err, service.ErrLastHighlightClass):
		h.app.conflictResponse(w, r, err)
	default:
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary List highlight classes
// @Description List every highlight class in creation order. The list is never empty.
// @Tags highlight-classes
// @Produce json
// @Success 200 {object} object{highlight_classes=[]data.HighlightClass}
// @Failure 500 {object} object{error=string}
// @Router /v1/highlight-classes [get]
func (h *HighlightClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.List()
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlight_classes": classes}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Create a highlight class
// @Description Create a custom highlight class. The ID is generated by the server.
// @Tags highlight-classes
// @Accept json
// @Produce json
// @Param input body object{name=string,color=string,background_color=string} true "Class name and colors"
// @Success 201 {object} object{highlight_class=data.HighlightClass}
// @Failure 400 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Failure 500 {object} object{error=string}
// @Router /v1/highlight-classes [post]
func (h *HighlightClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name            string `json:"name"`
		Color           string `json:"color"`
		BackgroundColor string `json:"background_color"`
	}

	err := h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	class := &data.HighlightClass{
		Name:            input.Name,
		Color:           input.Color,
		BackgroundColor: input.BackgroundColor,
	}

	v, err := h.service.Create(class)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleClassError(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/v1/highlight-classes/"+class.ID)

	err = h.app.writeJSON(w, http.StatusCreated, envelope{"highlight_class": class}, headers)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

func (h *HighlightClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	class, err := h.service.Get(id)
	if err != nil {
		h.handleClassError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlight_class": class}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Update a highlight class
// @Description Change the name or colors of a class. Omitted fields keep their value.
// @Tags highlight-classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param input body object{name=string,color=string,background_color=string} true "Fields to change"
// @Success 200 {object} object{highlight_class=data.HighlightClass}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=map[string]string}
// @Failure 500 {object} object{error=string}
// @Router /v1/highlight-classes/{id} [patch]
func (h *HighlightClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	class, err := h.service.Get(id)
	if err != nil {
		h.handleClassError(w, r, err)
		return
	}

	var input struct {
		Name            *string `json:"name"`
		Color           *string `json:"color"`
		BackgroundColor *string `json:"background_color"`
	}

	err = h.app.readJSON(w, r, &input)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	if input.Name != nil {
		class.Name = *input.Name
	}
	if input.Color != nil {
		class.Color = *input.Color
	}
	if input.BackgroundColor != nil {
		class.BackgroundColor = *input.BackgroundColor
	}

	v, err := h.service.Update(class)
	if v != nil && !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}
	if err != nil {
		h.handleClassError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"highlight_class": class}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a highlight class
// @Description Delete a class and every highlight that uses it. The last class can't be deleted.
// @Tags highlight-classes
// @Param id path string true "Class ID"
// @Success 204 "Deleted"
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string} "Last remaining class"
// @Failure 500 {object} object{error=string}
// @Router /v1/highlight-classes/{id} [delete]
func (h *HighlightClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.app.readStringParam(r, "id")
	if err != nil {
		h.app.notFoundResponse(w, r)
		return
	}

	err = h.service.Delete(id)
	if err != nil {
		h.handleClassError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
