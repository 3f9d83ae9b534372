package service

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"

	"studyhall/highlighter/internal/content"
)

// ContentSource is the notebook backend.
type ContentSource interface {
	Notebooks(ctx context.Context) ([]content.Notebook, error)
	Chapters(ctx context.Context, notebookID string) ([]content.Chapter, error)
	Content(ctx context.Context, notebookID, chapterID string) (*content.DocumentContent, error)
}

// invalidator is implemented by sources that cache backend responses.
type invalidator interface {
	Invalidate(ctx context.Context, notebookID, chapterID string) error
}

// Chapter is a rendered chapter ready to be painted.
type Chapter struct {
	NotebookID string
	ChapterID  string
	Title      string
	HTML       string
}

type NotebookService struct {
	source   ContentSource
	renderer *content.Renderer
}

func NewNotebookService(source ContentSource, renderer *content.Renderer) *NotebookService {
	return &NotebookService{
		source:   source,
		renderer: renderer,
	}
}

func (s *NotebookService) Notebooks(ctx context.Context) ([]content.Notebook, error) {
	return s.source.Notebooks(ctx)
}

func (s *NotebookService) Chapters(ctx context.Context, notebookID string) ([]content.Chapter, error) {
	chapters, err := s.source.Chapters(ctx, notebookID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return chapters, nil
}

// Refresh makes the next Chapter call read the chapter from the backend
// instead of a cache.
func (s *NotebookService) Refresh(ctx context.Context, notebookID, chapterID string) error {
	if inv, ok := s.source.(invalidator); ok {
		return inv.Invalidate(ctx, notebookID, chapterID)
	}
	return nil
}

// Chapter fetches the chapter list and the chapter body at the same time
// and renders the body to HTML.
func (s *NotebookService) Chapter(ctx context.Context, notebookID, chapterID string) (*Chapter, error) {
	var chapters []content.Chapter
	var doc *content.DocumentContent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chapters, err = s.source.Chapters(gctx, notebookID)
		return err
	})
	g.Go(func() error {
		var err error
		doc, err = s.source.Content(gctx, notebookID, chapterID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	title := doc.Title
	for _, c := range chapters {
		if strconv.Itoa(c.ID) == chapterID && c.Title != "" {
			title = c.Title
			break
		}
	}

	rendered, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}

	return &Chapter{
		NotebookID: notebookID,
		ChapterID:  chapterID,
		Title:      title,
		HTML:       rendered,
	}, nil
}
