package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/dom"
	"studyhall/highlighter/internal/highlight"
	"studyhall/highlighter/internal/validator"
)

// ObjectStorage keeps exported files.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ChapterExport is the document written to object storage.
type ChapterExport struct {
	NotebookID string                 `json:"notebook_id"`
	ChapterID  string                 `json:"chapter_id"`
	Title      string                 `json:"title"`
	ExportedAt time.Time              `json:"exported_at"`
	Classes    []*data.HighlightClass `json:"classes"`
	Highlights []*data.Highlight      `json:"highlights"`
	HTML       string                 `json:"html"`
}

type ExportResult struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
	Highlights int       `json:"highlights"`
	Restored   int       `json:"restored"`
}

type ExportService struct {
	storage        ObjectStorage
	notebooks      *NotebookService
	highlighter    *highlight.Highlighter
	classModel     data.HighlightClassModel
	highlightModel data.HighlightModel
	urlExpiry      time.Duration
	logger         *slog.Logger
}

// NewExportService returns a service that refuses to export when storage is
// nil.
func NewExportService(
	storage ObjectStorage,
	notebooks *NotebookService,
	highlighter *highlight.Highlighter,
	models data.Models,
	urlExpiry time.Duration,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{
		storage:        storage,
		notebooks:      notebooks,
		highlighter:    highlighter,
		classModel:     models.HighlightClasses,
		highlightModel: models.Highlights,
		urlExpiry:      urlExpiry,
		logger:         logger,
	}
}

// Export paints the chapter's highlights onto freshly rendered content and
// uploads the result together with the highlight records.
func (s *ExportService) Export(ctx context.Context, notebookID, chapterID string) (*ExportResult, *validator.Validator, error) {
	if s.storage == nil {
		return nil, nil, ErrExportDisabled
	}

	v := validator.New()
	if ValidateChapterScope(v, notebookID, chapterID); !v.Valid() {
		return nil, v, nil
	}

	var chapter *Chapter
	var classes []*data.HighlightClass
	var highlights []*data.Highlight

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chapter, err = s.notebooks.Chapter(gctx, notebookID, chapterID)
		return err
	})
	g.Go(func() error {
		var err error
		classes, err = s.classModel.GetAll()
		return err
	})
	g.Go(func() error {
		var err error
		highlights, err = s.highlightModel.GetByChapter(&data.ChapterFilters{
			NotebookID: notebookID,
			ChapterID:  chapterID,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	doc, err := dom.Parse(chapter.HTML)
	if err != nil {
		return nil, nil, err
	}
	restored, err := s.highlighter.Restore(highlight.NewDocumentSurface(doc), notebookID, chapterID)
	if err != nil {
		return nil, nil, err
	}
	painted, err := doc.HTML()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	body, err := json.Marshal(ChapterExport{
		NotebookID: notebookID,
		ChapterID:  chapterID,
		Title:      chapter.Title,
		ExportedAt: now,
		Classes:    classes,
		Highlights: highlights,
		HTML:       painted,
	})
	if err != nil {
		return nil, nil, err
	}

	key := fmt.Sprintf("exports/%s/%s/%s-%s.json", notebookID, chapterID, now.Format("20060102T150405"), uuid.New().String())
	if err := s.storage.Put(ctx, key, body, "application/json"); err != nil {
		s.logger.Error("failed to upload export", "key", key, "error", err)
		return nil, nil, err
	}

	url, err := s.storage.PresignGet(ctx, key, s.urlExpiry)
	if err != nil {
		// nobody could ever fetch the upload
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Error("failed to remove unreachable export", "key", key, "error", delErr)
		}
		return nil, nil, err
	}

	s.logger.Info("chapter exported", "notebook_id", notebookID, "chapter_id", chapterID, "key", key)

	return &ExportResult{
		Key:        key,
		URL:        url,
		ExpiresAt:  now.Add(s.urlExpiry),
		Highlights: len(highlights),
		Restored:   restored.Restored,
	}, nil, nil
}
