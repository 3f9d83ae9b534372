package main

import "studyhall/highlighter/internal/service"

// Handlers contains all HTTP methods
// This is specific to the HTTP API entry point
type Handlers struct {
	HighlightClass *HighlightClassHandler
	Highlight      *HighlightHandler
	Notebook       *NotebookHandler
	Session        *SessionHandler
	Export         *ExportHandler
}

// NewHandlers creates all HTTP handlers
func NewHandlers(app *application, services *service.Service) *Handlers {
	return &Handlers{
		HighlightClass: NewHighlightClassHandler(app, services.HighlightClass),
		Highlight:      NewHighlightHandler(app, services.Highlight, services.Stats),
		Notebook:       NewNotebookHandler(app, services.Notebook),
		Session:        NewSessionHandler(app, services.Workspace),
		Export:         NewExportHandler(app, services.Export),
	}
}
