package service

import (
	"log/slog"
	"time"

	"studyhall/highlighter/internal/content"
	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/highlight"
)

type Config struct {
	Workspace       WorkspaceConfig
	ExportURLExpiry time.Duration
}

// Service contains all business logic services
type Service struct {
	HighlightClass *HighlightClassService
	Highlight      *HighlightService
	Notebook       *NotebookService
	Workspace      *WorkspaceService
	Stats          *StatsService
	Export         *ExportService
}

// NewServices wires every service. storage may be nil to disable exports.
func NewServices(
	models data.Models,
	source ContentSource,
	storage ObjectStorage,
	scheduler Scheduler,
	cfg Config,
	logger *slog.Logger,
) *Service {
	highlighter := highlight.New(models, logger)
	notebooks := NewNotebookService(source, content.NewRenderer())

	classes := NewHighlightClassService(models.HighlightClasses, logger)
	workspace := NewWorkspaceService(
		notebooks,
		highlighter,
		models.HighlightClasses,
		scheduler,
		cfg.Workspace,
		logger,
	)
	classes.OnDelete(workspace.ClassDeleted)

	highlights := NewHighlightService(models.Highlights, logger)
	highlights.OnDelete(workspace.HighlightsDeleted)

	return &Service{
		HighlightClass: classes,
		Highlight:      highlights,
		Notebook:       notebooks,
		Workspace:      workspace,
		Stats:          NewStatsService(models.HighlightClasses, models.Highlights),
		Export: NewExportService(
			storage,
			notebooks,
			highlighter,
			models,
			cfg.ExportURLExpiry,
			logger,
		),
	}
}
